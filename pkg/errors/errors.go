package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidIdentifier   = errors.New("invalid data, please enter email or phone number")
	ErrDuplicateIdentifier = errors.New("an account with this email or phone number already exists")
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountNotVerified  = errors.New("you have not registered successfully, please complete sign up first")
	ErrInvalidCredentials  = errors.New("username or password you entered is incorrect")
	ErrInvalidToken        = errors.New("invalid or expired token")

	ErrInvalidOrExpiredCode = errors.New("verification code is incorrect or has expired")
	ErrCodeStillValid       = errors.New("you already have a valid verification code")

	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrWeakPassword     = errors.New("password does not meet requirements")
	ErrInvalidName      = errors.New("first name and last name cannot be entirely numeric")
	ErrInvalidUsername  = errors.New("username must be 5 to 30 characters long and not entirely numeric")

	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotPostAuthor   = errors.New("only the author may modify this post")
	ErrParentMismatch  = errors.New("parent comment belongs to a different post")
	ErrAlreadyLiked    = errors.New("you have already liked this")
	ErrLikeNotFound    = errors.New("like not found")
)

// AppError carries a machine-readable code next to the human-readable message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
