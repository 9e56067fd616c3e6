package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mahdi67436/cv-maker-web/internal/shared/auth"
	"github.com/mahdi67436/cv-maker-web/internal/shared/server/respond"
)

const (
	userIDKey    = "userId"
	userEmailKey = "userEmail"
	userNameKey  = "userName"
	userRoleKey  = "userRole"
)

// Auth validates bearer access tokens and stores identity in context.
func Auth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		claims, ok := bearerClaims(c, tokens)
		if !ok {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}
		if claims.Type == auth.TokenRefresh {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "refresh token cannot access resources", nil)
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// RequireRefresh accepts only refresh tokens. Used by the token refresh
// route, which must not accept access tokens.
func RequireRefresh(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, tokens)
		if !ok || claims.Type != auth.TokenRefresh {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid refresh token", nil)
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// RequireAdmin rejects identities without the admin role. Runs after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if RoleFromContext(c) != "admin" {
			respond.Error(c, http.StatusForbidden, "forbidden", "admin access required", nil)
			return
		}
		c.Next()
	}
}

func bearerClaims(c *gin.Context, tokens *auth.TokenService) (auth.Claims, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if !strings.HasPrefix(header, "Bearer ") {
		return auth.Claims{}, false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
	if raw == "" {
		return auth.Claims{}, false
	}
	claims, err := tokens.Verify(raw)
	if err != nil {
		return auth.Claims{}, false
	}
	return claims, true
}

func setIdentity(c *gin.Context, claims auth.Claims) {
	c.Set(userIDKey, claims.Subject)
	if claims.Email != "" {
		c.Set(userEmailKey, claims.Email)
	}
	if claims.Name != "" {
		c.Set(userNameKey, claims.Name)
	}
	if claims.Role != "" {
		c.Set(userRoleKey, claims.Role)
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// UserEmailFromContext fetches the user email set by the auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userEmailKey)
	if email, ok := val.(string); ok {
		return email
	}
	return ""
}

// RoleFromContext fetches the role set by the auth middleware.
func RoleFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userRoleKey)
	if role, ok := val.(string); ok {
		return role
	}
	return ""
}
