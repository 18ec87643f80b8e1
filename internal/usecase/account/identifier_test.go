package account

import (
	"errors"
	"testing"

	apperrors "pixshare/pkg/errors"
)

func TestClassifyIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  IdentifierType
	}{
		{"plain email", "alice@example.com", IdentifierEmail},
		{"email with plus tag", "alice+tag@example.co.uk", IdentifierEmail},
		{"e164 phone", "+14155552671", IdentifierPhone},
		{"vietnamese phone", "+84912345678", IdentifierPhone},
		{"simple username", "alice_01", IdentifierUsername},
		{"username with dots", "alice.bob-c", IdentifierUsername},
		// Digits without a region prefix are not a valid phone number, so
		// they fall through to username.
		{"bare digits", "0912345678", IdentifierUsername},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassifyIdentifier(tt.input)
			if err != nil {
				t.Fatalf("ClassifyIdentifier(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ClassifyIdentifier(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClassifyIdentifierInvalid(t *testing.T) {
	for _, input := range []string{"", "has spaces", "semi;colon", "em@il with spaces@x.com"} {
		_, err := ClassifyIdentifier(input)
		if !errors.Is(err, apperrors.ErrInvalidIdentifier) {
			t.Errorf("ClassifyIdentifier(%q) error = %v, want ErrInvalidIdentifier", input, err)
		}
	}
}
