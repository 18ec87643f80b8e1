package content

import (
	"time"

	"github.com/google/uuid"
)

// MaxCaptionLength bounds post captions.
const MaxCaptionLength = 2000

type Post struct {
	ID        uuid.UUID
	AuthorID  uuid.UUID
	ImagePath string
	Caption   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Comment is a node in a post's reply tree. ParentID is nil for top-level
// comments; a reply always belongs to the same post as its parent.
type Comment struct {
	ID        uuid.UUID
	AuthorID  uuid.UUID
	PostID    uuid.UUID
	Text      string
	ParentID  *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PostLike struct {
	ID        uuid.UUID
	AuthorID  uuid.UUID
	PostID    uuid.UUID
	CreatedAt time.Time
}

type CommentLike struct {
	ID        uuid.UUID
	AuthorID  uuid.UUID
	CommentID uuid.UUID
	CreatedAt time.Time
}
