package account

import (
	"time"

	"github.com/google/uuid"

	domainUser "pixshare/internal/domain/user"
)

type SignUpRequest struct {
	EmailOrPhone string `json:"email_or_phone" validate:"required"`
	Password     string `json:"password" validate:"omitempty,min=8"`
}

type VerifyRequest struct {
	Code string `json:"code" validate:"required,len=4,numeric"`
}

type LoginRequest struct {
	UserInput string `json:"user_input" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Username        string `json:"username" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type UpdatePhotoRequest struct {
	PhotoPath string `json:"photo_path" validate:"required"`
}

type ForgotPasswordRequest struct {
	EmailOrPhone string `json:"email_or_phone" validate:"required"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,min=8"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       *string    `json:"email,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	PhotoPath   *string    `json:"photo,omitempty"`
	Role        string     `json:"role"`
	AuthType    string     `json:"auth_type"`
	AuthStatus  string     `json:"auth_status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type AuthResponse struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresAt    int64         `json:"expires_at"`
}

type VerifyResponse struct {
	AuthStatus   string `json:"auth_status"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

func ToUserResponse(u *domainUser.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhotoPath:   u.PhotoPath,
		Role:        string(u.Role),
		AuthType:    string(u.AuthType),
		AuthStatus:  string(u.AuthStatus),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
