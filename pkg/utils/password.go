package utils

import (
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	apperrors "pixshare/pkg/errors"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// ValidatePassword enforces the strength policy applied on profile update and
// password reset. Auto-generated placeholder passwords never pass through here.
func ValidatePassword(password string) error {
	var (
		hasUpper  = false
		hasLower  = false
		hasNumber = false
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if len(password) < 8 || !hasUpper || !hasLower || !hasNumber {
		return fmt.Errorf("%w: must be at least 8 characters and contain uppercase, lowercase and a number",
			apperrors.ErrWeakPassword)
	}

	return nil
}
