package user

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleOrdinary Role = "ordinary_user"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// AuthType records which identity anchor the account was created with.
type AuthType string

const (
	AuthTypeEmail AuthType = "via_email"
	AuthTypePhone AuthType = "via_phone"
)

// AuthStatus is the lifecycle stage of an account:
// new -> code_verified -> done, with photo_uploaded reachable from any stage.
type AuthStatus string

const (
	StatusNew           AuthStatus = "new"
	StatusCodeVerified  AuthStatus = "code_verified"
	StatusDone          AuthStatus = "done"
	StatusPhotoUploaded AuthStatus = "photo_uploaded"
)

// CanLogin reports whether the account has completed signup far enough
// to authenticate.
func (s AuthStatus) CanLogin() bool {
	return s == StatusDone || s == StatusPhotoUploaded
}

type User struct {
	ID             uuid.UUID
	Username       string
	Email          *string
	PhoneNumber    *string
	PasswordHashed string
	FirstName      string
	LastName       string
	PhotoPath      *string
	Role           Role
	AuthType       AuthType
	AuthStatus     AuthStatus
	LastLoginAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Destination returns the address verification codes are delivered to.
func (u *User) Destination() string {
	if u.AuthType == AuthTypePhone && u.PhoneNumber != nil {
		return *u.PhoneNumber
	}
	if u.Email != nil {
		return *u.Email
	}
	return ""
}

// Verification code expiration windows.
const (
	EmailCodeExpiry = 5 * time.Minute
	PhoneCodeExpiry = 2 * time.Minute
)

type VerificationCode struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Code             string
	VerificationType AuthType
	ExpiresAt        time.Time
	Confirmed        bool
	CreatedAt        time.Time
}

func (v *VerificationCode) IsExpired() bool {
	return time.Now().After(v.ExpiresAt)
}

type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	Revoked   bool
	RevokedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// IsActive reports whether the token may still be redeemed.
func (rt *RefreshToken) IsActive() bool {
	return !rt.Revoked && !rt.IsExpired()
}
