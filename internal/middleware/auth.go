package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pixshare/internal/config"
	"pixshare/pkg/utils"
)

const (
	ContextUserIDKey   = "userID"
	ContextUsernameKey = "username"
	ContextRoleKey     = "role"
)

// AuthMiddleware requires a valid access token and puts the caller's
// identity on the context.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, cfg)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Set(ContextRoleKey, claims.Role)

		c.Next()
	}
}

// OptionalAuthMiddleware decorates the context with the caller's identity
// when a valid token is present, but lets anonymous requests through.
func OptionalAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c, cfg); ok {
			c.Set(ContextUserIDKey, claims.UserID)
			c.Set(ContextUsernameKey, claims.Username)
			c.Set(ContextRoleKey, claims.Role)
		}
		c.Next()
	}
}

func bearerClaims(c *gin.Context, cfg *config.Config) (*utils.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := utils.ValidateToken(parts[1], cfg.JWT.Secret)
	if err != nil || claims.TokenType != utils.TokenTypeAccess {
		return nil, false
	}

	return claims, true
}

// GetUserID returns the authenticated user's ID from the context.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// GetViewerID returns the caller's ID, or uuid.Nil for anonymous requests.
func GetViewerID(c *gin.Context) uuid.UUID {
	id, _ := GetUserID(c)
	return id
}
