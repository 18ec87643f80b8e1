package content

import "errors"

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrAlreadyLiked    = errors.New("like already exists")
	ErrLikeNotFound    = errors.New("like not found")
)
