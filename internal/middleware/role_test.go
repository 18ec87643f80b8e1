package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pixshare/internal/config"
	"pixshare/pkg/utils"
)

func setupRoleRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	router.DELETE("/admin", AuthMiddleware(cfg), AdminOnly(), ok)
	router.GET("/review", AuthMiddleware(cfg), ManagerOrAdmin(), ok)

	return router
}

func TestRoleMiddleware(t *testing.T) {
	cfg := testConfig()
	router := setupRoleRouter(cfg)

	token := func(role string) string {
		t.Helper()
		pair, err := utils.GenerateTokenPair(uuid.New(), "alice", role, cfg.JWT.Secret, 1, 24)
		if err != nil {
			t.Fatalf("GenerateTokenPair failed: %v", err)
		}
		return "Bearer " + pair.AccessToken
	}

	tests := []struct {
		name       string
		method     string
		path       string
		role       string
		wantStatus int
	}{
		{"ordinary user blocked from admin route", http.MethodDelete, "/admin", "ordinary_user", http.StatusForbidden},
		{"manager blocked from admin route", http.MethodDelete, "/admin", "manager", http.StatusForbidden},
		{"admin allowed on admin route", http.MethodDelete, "/admin", "admin", http.StatusOK},
		{"ordinary user blocked from manager route", http.MethodGet, "/review", "ordinary_user", http.StatusForbidden},
		{"manager allowed on manager route", http.MethodGet, "/review", "manager", http.StatusOK},
		{"admin allowed on manager route", http.MethodGet, "/review", "admin", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Authorization", token(tt.role))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
