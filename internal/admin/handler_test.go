package admin

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
	"github.com/mahdi67436/cv-maker-web/internal/users"
)

func newAdminRouter(t *testing.T) (*gin.Engine, *MemoryRepo, string, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenService("test-secret", time.Hour, 24*time.Hour)
	require.NoError(t, err)

	svc, repo, _ := newTestService()
	h := NewHandler(svc)

	r := gin.New()
	group := r.Group("/api/admin")
	group.Use(middleware.Auth(tokens))
	h.RegisterRoutes(group, middleware.NewRateLimiter(nil))

	adminToken, err := tokens.Sign("admin-1", "root@example.com", "Root", "admin", auth.TokenAccess)
	require.NoError(t, err)
	userToken, err := tokens.Sign("u1", "jane@example.com", "Jane", "user", auth.TokenAccess)
	require.NoError(t, err)

	repo.PutUser(users.User{ID: "admin-1", Email: "root@example.com", Role: "admin", IsActive: true, CreatedAt: testNow})
	repo.PutUser(users.User{ID: "u1", Email: "jane@example.com", Role: "user", IsActive: true, CreatedAt: testNow})

	return r, repo, adminToken, userToken
}

func doAdmin(r *gin.Engine, method, path string, payload any, token string) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func TestAdminAccessControl(t *testing.T) {
	r, _, _, userToken := newAdminRouter(t)

	resp := doAdmin(r, http.MethodGet, "/api/admin/dashboard", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = doAdmin(r, http.MethodGet, "/api/admin/dashboard", nil, userToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestAdminDashboardEndpoint(t *testing.T) {
	r, _, adminToken, _ := newAdminRouter(t)

	resp := doAdmin(r, http.MethodGet, "/api/admin/dashboard", nil, adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	body := decode(t, resp)
	stats := body["stats"].(map[string]any)
	assert.Equal(t, float64(2), stats["totalUsers"])
	assert.Len(t, body["growth"].([]any), 30)
	assert.Len(t, body["topTemplates"].([]any), 5)
}

func TestAdminUserEndpoints(t *testing.T) {
	r, _, adminToken, _ := newAdminRouter(t)

	resp := doAdmin(r, http.MethodGet, "/api/admin/users?status=admin", nil, adminToken)
	require.Equal(t, http.StatusOK, resp.Code)
	body := decode(t, resp)
	assert.Equal(t, float64(1), body["total"])

	resp = doAdmin(r, http.MethodGet, "/api/admin/users/u1", nil, adminToken)
	require.Equal(t, http.StatusOK, resp.Code)
	body = decode(t, resp)
	user := body["user"].(map[string]any)
	assert.Equal(t, "jane@example.com", user["email"])

	resp = doAdmin(r, http.MethodPut, "/api/admin/users/u1/status", nil, adminToken)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, false, decode(t, resp)["isActive"])

	resp = doAdmin(r, http.MethodPut, "/api/admin/users/admin-1/status", nil, adminToken)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doAdmin(r, http.MethodDelete, "/api/admin/users/u1", nil, adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doAdmin(r, http.MethodGet, "/api/admin/users/u1", nil, adminToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAdminTemplateEndpoints(t *testing.T) {
	r, _, adminToken, _ := newAdminRouter(t)

	resp := doAdmin(r, http.MethodGet, "/api/admin/templates", nil, adminToken)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, decode(t, resp)["templates"].([]any), 5)

	resp = doAdmin(r, http.MethodPut, "/api/admin/templates/tpl-dark", gin.H{"isActive": false}, adminToken)
	require.Equal(t, http.StatusOK, resp.Code)
	tpl := decode(t, resp)["template"].(map[string]any)
	assert.Equal(t, false, tpl["isActive"])

	resp = doAdmin(r, http.MethodPut, "/api/admin/templates/tpl-missing", gin.H{"isActive": false}, adminToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAdminSettingsEndpoints(t *testing.T) {
	r, _, adminToken, _ := newAdminRouter(t)

	resp := doAdmin(r, http.MethodPut, "/api/admin/settings", gin.H{"site_name": "CV Maker"}, adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doAdmin(r, http.MethodPut, "/api/admin/settings", gin.H{}, adminToken)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doAdmin(r, http.MethodGet, "/api/admin/settings", nil, adminToken)
	require.Equal(t, http.StatusOK, resp.Code)
	settings := decode(t, resp)["settings"].(map[string]any)
	entry := settings["site_name"].(map[string]any)
	assert.Equal(t, "CV Maker", entry["value"])
}

func TestAdminAuditLogEndpoint(t *testing.T) {
	r, _, adminToken, _ := newAdminRouter(t)

	resp := doAdmin(r, http.MethodPut, "/api/admin/users/u1/status", nil, adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doAdmin(r, http.MethodGet, "/api/admin/audit-log?action=user_status_change", nil, adminToken)
	require.Equal(t, http.StatusOK, resp.Code)
	body := decode(t, resp)
	assert.Equal(t, float64(1), body["total"])
	logs := body["auditLogs"].([]any)
	entry := logs[0].(map[string]any)
	assert.Equal(t, "admin-1", entry["adminId"])
}

func TestAdminStatsEndpoint(t *testing.T) {
	r, repo, adminToken, _ := newAdminRouter(t)

	repo.PutResume(ResumeSummary{ID: "r1", UserID: "u1", Template: "modern", DownloadCount: 4})

	resp := doAdmin(r, http.MethodGet, "/api/admin/stats", nil, adminToken)
	require.Equal(t, http.StatusOK, resp.Code)
	body := decode(t, resp)
	assert.Equal(t, float64(4), body["downloads"])
	usersBlock := body["users"].(map[string]any)
	assert.Equal(t, float64(2), usersBlock["total"])
	assert.Len(t, body["activityData"].([]any), 7)
}
