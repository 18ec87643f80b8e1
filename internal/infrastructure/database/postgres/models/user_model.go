package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for User
type UserModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username       string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email          *string    `gorm:"type:varchar(255);uniqueIndex"`
	PhoneNumber    *string    `gorm:"type:varchar(20);uniqueIndex"`
	PasswordHashed string     `gorm:"type:varchar(255);not null"`
	FirstName      string     `gorm:"type:varchar(100)"`
	LastName       string     `gorm:"type:varchar(100)"`
	PhotoPath      *string    `gorm:"type:varchar(500)"`
	Role           string     `gorm:"type:varchar(31);not null;default:'ordinary_user'"`
	AuthType       string     `gorm:"type:varchar(31);not null"`
	AuthStatus     string     `gorm:"type:varchar(31);not null;default:'new'"`
	LastLoginAt    *time.Time `gorm:"type:timestamp"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      time.Time  `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// VerificationCodeModel represents the database model for VerificationCode
type VerificationCodeModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	User             UserModel `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Code             string    `gorm:"type:varchar(4);not null;index"`
	VerificationType string    `gorm:"type:varchar(31);not null"`
	ExpiresAt        time.Time `gorm:"not null;index"`
	Confirmed        bool      `gorm:"default:false;not null"`
	CreatedAt        time.Time `gorm:"not null"`
}

func (VerificationCodeModel) TableName() string {
	return "verification_codes"
}

// RefreshTokenModel represents the database model for RefreshToken
type RefreshTokenModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	User      UserModel  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Token     string     `gorm:"type:varchar(500);not null;uniqueIndex"`
	ExpiresAt time.Time  `gorm:"not null;index"`
	Revoked   bool       `gorm:"default:false;index"`
	RevokedAt *time.Time `gorm:"type:timestamp"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
