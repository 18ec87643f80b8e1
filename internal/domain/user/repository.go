package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines persistence for user accounts.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)

	// GetByIDs returns the users with the given IDs; missing IDs are skipped.
	GetByIDs(ctx context.Context, userIDs []uuid.UUID) ([]*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	RecordLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}

// VerificationCodeRepository defines persistence for one-time codes.
type VerificationCodeRepository interface {
	Create(ctx context.Context, code *VerificationCode) error

	// ConfirmMatching marks every unconfirmed, unexpired code of the user with
	// the given value as confirmed and returns how many rows it touched.
	ConfirmMatching(ctx context.Context, userID uuid.UUID, code string) (int64, error)

	// HasActive reports whether the user holds any unconfirmed, unexpired code.
	HasActive(ctx context.Context, userID uuid.UUID) (bool, error)

	DeleteExpired(ctx context.Context) error
}

// RefreshTokenRepository defines persistence for issued refresh tokens.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	GetByToken(ctx context.Context, token string) (*RefreshToken, error)
	Revoke(ctx context.Context, tokenID uuid.UUID) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, olderThan time.Duration) error
}
