package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestGenerateAndValidateTokenPair(t *testing.T) {
	userID := uuid.New()

	pair, err := GenerateTokenPair(userID, "alice", "ordinary_user", "secret", 1, 24)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	access, err := ValidateToken(pair.AccessToken, "secret")
	if err != nil {
		t.Fatalf("ValidateToken(access) failed: %v", err)
	}
	if access.UserID != userID || access.Username != "alice" || access.TokenType != TokenTypeAccess {
		t.Errorf("access claims = %+v", access)
	}

	refresh, err := ValidateToken(pair.RefreshToken, "secret")
	if err != nil {
		t.Fatalf("ValidateToken(refresh) failed: %v", err)
	}
	if refresh.TokenType != TokenTypeRefresh {
		t.Errorf("refresh token type = %q, want refresh", refresh.TokenType)
	}

	if pair.AccessToken == pair.RefreshToken {
		t.Error("access and refresh tokens are identical")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	pair, err := GenerateTokenPair(uuid.New(), "alice", "ordinary_user", "secret", 1, 24)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	if _, err := ValidateToken(pair.AccessToken, "other-secret"); err == nil {
		t.Error("token signed with different secret accepted")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token", "secret"); err == nil {
		t.Error("malformed token accepted")
	}
}

func TestTokensAreUniquePerIssue(t *testing.T) {
	userID := uuid.New()

	first, err := GenerateTokenPair(userID, "alice", "ordinary_user", "secret", 1, 24)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	second, err := GenerateTokenPair(userID, "alice", "ordinary_user", "secret", 1, 24)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	// Tokens carry a unique jti, so back-to-back issues never collide.
	if first.RefreshToken == second.RefreshToken {
		t.Error("refresh tokens issued back to back are identical")
	}
}
