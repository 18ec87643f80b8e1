package content

import (
	"context"

	"github.com/google/uuid"
)

// PostRepository defines persistence for posts.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, postID uuid.UUID) (*Post, error)

	// List returns posts newest first along with the total post count.
	List(ctx context.Context, offset, limit int) ([]*Post, int64, error)

	Update(ctx context.Context, post *Post) error

	// Delete removes the post; comments and likes go with it via
	// the database cascade.
	Delete(ctx context.Context, postID uuid.UUID) error
}

// CommentRepository defines persistence for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, commentID uuid.UUID) (*Comment, error)

	// ListByPost returns every comment of the post, oldest first, so the
	// reply tree can be assembled in memory from a single query.
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*Comment, error)

	// CountByPost returns comment counts grouped by post.
	CountByPost(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

// LikeRepository defines persistence for post and comment likes. Creates rely
// on the (author, target) unique constraint and report ErrAlreadyLiked on
// conflict; this is what serializes concurrent duplicate likes.
type LikeRepository interface {
	CreatePostLike(ctx context.Context, like *PostLike) error
	DeletePostLike(ctx context.Context, authorID, postID uuid.UUID) error
	ListPostLikes(ctx context.Context, postID uuid.UUID) ([]*PostLike, error)
	CountPostLikes(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error)

	// LikedPosts reports which of the given posts the viewer has liked.
	LikedPosts(ctx context.Context, authorID uuid.UUID, postIDs []uuid.UUID) (map[uuid.UUID]bool, error)

	CreateCommentLike(ctx context.Context, like *CommentLike) error
	DeleteCommentLike(ctx context.Context, authorID, commentID uuid.UUID) error
	ListCommentLikes(ctx context.Context, commentID uuid.UUID) ([]*CommentLike, error)

	// CountCommentLikes returns like counts grouped by comment for every
	// comment of the post.
	CountCommentLikes(ctx context.Context, postID uuid.UUID) (map[uuid.UUID]int64, error)

	// LikedComments reports which comments of the post the viewer has liked.
	LikedComments(ctx context.Context, authorID, postID uuid.UUID) (map[uuid.UUID]bool, error)
}
