package account

import (
	"regexp"

	"github.com/nyaruka/phonenumbers"

	apperrors "pixshare/pkg/errors"
)

// IdentifierType classifies what a user typed into a signup or login form.
type IdentifierType string

const (
	IdentifierEmail    IdentifierType = "email"
	IdentifierPhone    IdentifierType = "phone_number"
	IdentifierUsername IdentifierType = "username"
)

var (
	emailRegex    = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,7}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.\-]+$`)
)

// ClassifyIdentifier decides whether input is an email address, a valid phone
// number, or a username, in that order. Phone numbers must carry a region
// prefix (E.164) since accounts are not bound to a default country.
func ClassifyIdentifier(input string) (IdentifierType, error) {
	if emailRegex.MatchString(input) {
		return IdentifierEmail, nil
	}

	if num, err := phonenumbers.Parse(input, ""); err == nil && phonenumbers.IsValidNumber(num) {
		return IdentifierPhone, nil
	}

	if usernameRegex.MatchString(input) {
		return IdentifierUsername, nil
	}

	return "", apperrors.ErrInvalidIdentifier
}
