package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdi67436/cv-maker-web/internal/shared/auth"
	"github.com/mahdi67436/cv-maker-web/internal/shared/server/middleware"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenService("test-secret", time.Hour, 24*time.Hour)
	require.NoError(t, err)

	svc, _ := newTestService()
	h := NewHandler(svc, tokens)

	r := gin.New()
	authGroup := r.Group("/api/auth")
	h.RegisterPublicRoutes(authGroup, middleware.NewRateLimiter(nil))

	protected := r.Group("/api/auth")
	protected.Use(middleware.Auth(tokens))
	h.RegisterProtectedRoutes(protected)

	return r, h
}

func postJSON(r *gin.Engine, path string, payload any, token string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRegisterEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := postJSON(r, "/api/auth/register", gin.H{
		"email":     "jane@example.com",
		"password":  "Str0ng!pass",
		"firstName": "Jane",
	}, "")

	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var out tokenResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, "jane@example.com", out.User.Email)
}

func TestRegisterEndpointRejectsBadEmail(t *testing.T) {
	r, _ := newTestRouter(t)
	resp := postJSON(r, "/api/auth/register", gin.H{"email": "nope", "password": "Str0ng!pass"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRegisterEndpointConflict(t *testing.T) {
	r, _ := newTestRouter(t)
	payload := gin.H{"email": "jane@example.com", "password": "Str0ng!pass"}

	require.Equal(t, http.StatusCreated, postJSON(r, "/api/auth/register", payload, "").Code)
	assert.Equal(t, http.StatusConflict, postJSON(r, "/api/auth/register", payload, "").Code)
}

func TestLoginAndMeFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	require.Equal(t, http.StatusCreated, postJSON(r, "/api/auth/register", gin.H{
		"email": "jane@example.com", "password": "Str0ng!pass",
	}, "").Code)

	resp := postJSON(r, "/api/auth/login", gin.H{"email": "jane@example.com", "password": "Str0ng!pass"}, "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var out tokenResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+out.AccessToken)
	meResp := httptest.NewRecorder()
	r.ServeHTTP(meResp, req)
	require.Equal(t, http.StatusOK, meResp.Code)

	var me User
	require.NoError(t, json.Unmarshal(meResp.Body.Bytes(), &me))
	assert.Equal(t, "jane@example.com", me.Email)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	r, _ := newTestRouter(t)

	require.Equal(t, http.StatusCreated, postJSON(r, "/api/auth/register", gin.H{
		"email": "jane@example.com", "password": "Str0ng!pass",
	}, "").Code)

	resp := postJSON(r, "/api/auth/login", gin.H{"email": "jane@example.com", "password": "Other1!pass"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRefreshRequiresRefreshToken(t *testing.T) {
	r, h := newTestRouter(t)

	user, err := h.Svc.Register(httptest.NewRequest(http.MethodGet, "/", nil).Context(), RegisterInput{
		Email: "jane@example.com", Password: "Str0ng!pass",
	})
	require.NoError(t, err)

	access, _ := h.Tokens.Sign(user.ID, user.Email, "", user.Role, auth.TokenAccess)
	refresh, _ := h.Tokens.Sign(user.ID, user.Email, "", user.Role, auth.TokenRefresh)

	assert.Equal(t, http.StatusUnauthorized, postJSON(r, "/api/auth/refresh", nil, access).Code)

	resp := postJSON(r, "/api/auth/refresh", nil, refresh)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var out map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.NotEmpty(t, out["accessToken"])
}

func TestChangePasswordEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	regResp := postJSON(r, "/api/auth/register", gin.H{"email": "jane@example.com", "password": "Str0ng!pass"}, "")
	require.Equal(t, http.StatusCreated, regResp.Code)
	var out tokenResponse
	require.NoError(t, json.Unmarshal(regResp.Body.Bytes(), &out))

	resp := postJSON(r, "/api/auth/login", gin.H{"email": "jane@example.com", "password": "Str0ng!pass"}, "")
	require.Equal(t, http.StatusOK, resp.Code)

	req := httptest.NewRequest(http.MethodPut, "/api/auth/change-password", bytes.NewReader(mustJSON(gin.H{
		"currentPassword": "Str0ng!pass",
		"newPassword":     "N3w!password",
	})))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+out.AccessToken)
	changeResp := httptest.NewRecorder()
	r.ServeHTTP(changeResp, req)
	require.Equal(t, http.StatusOK, changeResp.Code, changeResp.Body.String())

	assert.Equal(t, http.StatusUnauthorized, postJSON(r, "/api/auth/login", gin.H{
		"email": "jane@example.com", "password": "Str0ng!pass",
	}, "").Code)
	assert.Equal(t, http.StatusOK, postJSON(r, "/api/auth/login", gin.H{
		"email": "jane@example.com", "password": "N3w!password",
	}, "").Code)
}

func mustJSON(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}
