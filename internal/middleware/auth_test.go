package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pixshare/internal/config"
	"pixshare/pkg/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:             "test-secret",
			ExpiryHours:        1,
			RefreshExpiryHours: 24,
		},
	}
}

func setupAuthRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/protected", AuthMiddleware(cfg), func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String()})
	})

	router.GET("/open", OptionalAuthMiddleware(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"viewer_id": GetViewerID(c).String()})
	})

	return router
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	router := setupAuthRouter(cfg)

	pair, err := utils.GenerateTokenPair(uuid.New(), "alice", "ordinary_user", cfg.JWT.Secret, 1, 24)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
		// A refresh token must not open access-protected routes.
		{"refresh token as access", "Bearer " + pair.RefreshToken, http.StatusUnauthorized},
		{"valid access token", "Bearer " + pair.AccessToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestOptionalAuthMiddlewareAllowsAnonymous(t *testing.T) {
	cfg := testConfig()
	router := setupAuthRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestOptionalAuthMiddlewareSetsViewer(t *testing.T) {
	cfg := testConfig()
	router := setupAuthRouter(cfg)

	userID := uuid.New()
	pair, err := utils.GenerateTokenPair(userID, "alice", "ordinary_user", cfg.JWT.Secret, 1, 24)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, userID.String()) {
		t.Errorf("response %q does not carry viewer id %s", body, userID)
	}
}
