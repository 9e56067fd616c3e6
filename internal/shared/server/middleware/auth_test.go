package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mahdi67436/cv-maker-web/internal/shared/auth"
)

func newTestTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	svc, err := auth.NewTokenService("test-secret", time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return svc
}

func newAuthRouter(tokens *auth.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(tokens))
	r.GET("/api/resumes", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": UserIDFromContext(c), "role": RoleFromContext(c)})
	})
	r.GET("/api/admin/users", RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	r := newAuthRouter(newTestTokens(t))

	req := httptest.NewRequest(http.MethodOptions, "/api/resumes", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestAuthRejectsMissingToken(t *testing.T) {
	r := newAuthRouter(newTestTokens(t))

	req := httptest.NewRequest(http.MethodGet, "/api/resumes", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthAcceptsAccessToken(t *testing.T) {
	tokens := newTestTokens(t)
	r := newAuthRouter(tokens)

	token, err := tokens.Sign("user-1", "a@b.com", "Ada", "user", auth.TokenAccess)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/resumes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAuthRejectsRefreshTokenOnResources(t *testing.T) {
	tokens := newTestTokens(t)
	r := newAuthRouter(tokens)

	token, err := tokens.Sign("user-1", "", "", "", auth.TokenRefresh)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/resumes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestRequireAdminForbidsRegularUsers(t *testing.T) {
	tokens := newTestTokens(t)
	r := newAuthRouter(tokens)

	userToken, _ := tokens.Sign("user-1", "", "", "user", auth.TokenAccess)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user role, got %d", resp.Code)
	}

	adminToken, _ := tokens.Sign("admin-1", "", "", "admin", auth.TokenAccess)
	req = httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin role, got %d", resp.Code)
	}
}
