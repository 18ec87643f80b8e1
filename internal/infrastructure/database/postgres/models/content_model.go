package models

import (
	"time"

	"github.com/google/uuid"
)

// PostModel represents the database model for Post
type PostModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Author    UserModel `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	ImagePath string    `gorm:"type:varchar(500);not null"`
	Caption   string    `gorm:"type:varchar(2000)"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (PostModel) TableName() string {
	return "posts"
}

// CommentModel represents the database model for Comment
type CommentModel struct {
	ID        uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AuthorID  uuid.UUID     `gorm:"type:uuid;not null;index"`
	Author    UserModel     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	PostID    uuid.UUID     `gorm:"type:uuid;not null;index"`
	Post      PostModel     `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Text      string        `gorm:"type:text;not null"`
	ParentID  *uuid.UUID    `gorm:"type:uuid;index"`
	Parent    *CommentModel `gorm:"foreignKey:ParentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt time.Time     `gorm:"not null"`
	UpdatedAt time.Time     `gorm:"not null"`
}

func (CommentModel) TableName() string {
	return "comments"
}

// PostLikeModel represents the database model for PostLike. The composite
// unique index is what guarantees one like per (author, post), including
// under concurrent requests.
type PostLikeModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_like_author_post"`
	Author    UserModel `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_post_like_author_post"`
	Post      PostModel `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"not null"`
}

func (PostLikeModel) TableName() string {
	return "post_likes"
}

// CommentLikeModel represents the database model for CommentLike
type CommentLikeModel struct {
	ID        uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AuthorID  uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_comment_like_author_comment"`
	Author    UserModel    `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CommentID uuid.UUID    `gorm:"type:uuid;not null;index;uniqueIndex:idx_comment_like_author_comment"`
	Comment   CommentModel `gorm:"foreignKey:CommentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt time.Time    `gorm:"not null"`
}

func (CommentLikeModel) TableName() string {
	return "comment_likes"
}
