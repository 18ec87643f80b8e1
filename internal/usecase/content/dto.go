package content

import (
	"time"

	"github.com/google/uuid"

	domainContent "pixshare/internal/domain/content"
	domainUser "pixshare/internal/domain/user"
)

type CreatePostRequest struct {
	ImagePath string `json:"image_path" validate:"required"`
	Caption   string `json:"caption" validate:"max=2000"`
}

// UpdatePostRequest replaces the post's image and caption.
type UpdatePostRequest struct {
	ImagePath string `json:"image_path" validate:"required"`
	Caption   string `json:"caption" validate:"max=2000"`
}

type CreateCommentRequest struct {
	Text     string     `json:"text" validate:"required"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

// AuthorResponse is the slice of account data embedded in content responses.
type AuthorResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	PhotoPath *string   `json:"photo,omitempty"`
}

type PostResponse struct {
	ID             uuid.UUID       `json:"id"`
	Author         *AuthorResponse `json:"author"`
	ImagePath      string          `json:"image_path"`
	Caption        string          `json:"caption"`
	LikeCount      int64           `json:"like_count"`
	CommentCount   int64           `json:"comment_count"`
	ViewerHasLiked bool            `json:"viewer_has_liked"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type PostListResponse struct {
	Posts []*PostResponse `json:"posts"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// CommentResponse carries one comment and its direct replies, recursively.
type CommentResponse struct {
	ID             uuid.UUID          `json:"id"`
	Author         *AuthorResponse    `json:"author"`
	PostID         uuid.UUID          `json:"post_id"`
	ParentID       *uuid.UUID         `json:"parent_id,omitempty"`
	Text           string             `json:"text"`
	LikeCount      int64              `json:"like_count"`
	ViewerHasLiked bool               `json:"viewer_has_liked"`
	Replies        []*CommentResponse `json:"replies"`
	CreatedAt      time.Time          `json:"created_at"`
}

type LikeResponse struct {
	Author    *AuthorResponse `json:"author"`
	CreatedAt time.Time       `json:"created_at"`
}

func toAuthorResponse(u *domainUser.User) *AuthorResponse {
	if u == nil {
		return nil
	}
	return &AuthorResponse{
		ID:        u.ID,
		Username:  u.Username,
		PhotoPath: u.PhotoPath,
	}
}

func toPostResponse(p *domainContent.Post, author *domainUser.User, likeCount, commentCount int64, viewerLiked bool) *PostResponse {
	return &PostResponse{
		ID:             p.ID,
		Author:         toAuthorResponse(author),
		ImagePath:      p.ImagePath,
		Caption:        p.Caption,
		LikeCount:      likeCount,
		CommentCount:   commentCount,
		ViewerHasLiked: viewerLiked,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
