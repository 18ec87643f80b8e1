package user

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUsernameTaken     = errors.New("username already taken")

	ErrCodeNotFound  = errors.New("verification code not found")
	ErrTokenNotFound = errors.New("refresh token not found")
)
