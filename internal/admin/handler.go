package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mahdi67436/cv-maker-web/internal/shared/server/middleware"
	"github.com/mahdi67436/cv-maker-web/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes wires the admin endpoints. The group must already carry
// token auth; this adds the role check and the shared admin rate limit.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, limiter *middleware.RateLimiter) {
	rg.Use(middleware.RequireAdmin())
	rg.Use(middleware.RateLimit(limiter, "admin", middleware.PerHour(100)))

	rg.GET("/dashboard", h.dashboard)
	rg.GET("/stats", h.stats)

	rg.GET("/users", h.listUsers)
	rg.GET("/users/:id", h.getUser)
	rg.PUT("/users/:id/status", h.toggleUserStatus)
	rg.DELETE("/users/:id", h.deleteUser)

	rg.GET("/resumes", h.listResumes)

	rg.GET("/templates", h.listTemplates)
	rg.PUT("/templates/:id", h.updateTemplate)

	rg.GET("/settings", h.settings)
	rg.PUT("/settings", h.updateSettings)

	rg.GET("/audit-log", h.auditLog)
}

func (h *Handler) dashboard(c *gin.Context) {
	dash, err := h.Svc.Dashboard(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "failed to load dashboard")
		return
	}
	respond.OK(c, dash)
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.Svc.Stats(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "failed to load statistics")
		return
	}
	respond.OK(c, stats)
}

func (h *Handler) listUsers(c *gin.Context) {
	opts := ListUsersOptions{
		Page:      queryInt(c, "page", 1),
		PerPage:   queryInt(c, "perPage", 20),
		Search:    c.Query("search"),
		Status:    c.Query("status"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
	page, err := h.Svc.ListUsers(c.Request.Context(), opts)
	if err != nil {
		h.respondError(c, err, "failed to list users")
		return
	}
	respond.OK(c, page)
}

func (h *Handler) getUser(c *gin.Context) {
	detail, err := h.Svc.UserDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to load user")
		return
	}
	respond.OK(c, detail)
}

func (h *Handler) toggleUserStatus(c *gin.Context) {
	adminID := middleware.UserIDFromContext(c)
	active, err := h.Svc.ToggleUserStatus(c.Request.Context(), adminID, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to update user status")
		return
	}
	respond.OK(c, gin.H{"isActive": active})
}

func (h *Handler) deleteUser(c *gin.Context) {
	adminID := middleware.UserIDFromContext(c)
	if err := h.Svc.DeleteUser(c.Request.Context(), adminID, c.Param("id")); err != nil {
		h.respondError(c, err, "failed to delete user")
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}

func (h *Handler) listResumes(c *gin.Context) {
	opts := ListResumesOptions{
		Page:    queryInt(c, "page", 1),
		PerPage: queryInt(c, "perPage", 20),
		Search:  c.Query("search"),
		Status:  c.Query("status"),
	}
	page, err := h.Svc.ListResumes(c.Request.Context(), opts)
	if err != nil {
		h.respondError(c, err, "failed to list resumes")
		return
	}
	respond.OK(c, page)
}

func (h *Handler) listTemplates(c *gin.Context) {
	list, err := h.Svc.ListTemplates(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "failed to list templates")
		return
	}
	respond.OK(c, gin.H{"templates": list})
}

type templatePatchRequest struct {
	DisplayName *string `json:"displayName" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"isActive"`
	IsPremium   *bool   `json:"isPremium"`
}

func (h *Handler) updateTemplate(c *gin.Context) {
	var req templatePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid template payload", err.Error())
		return
	}
	adminID := middleware.UserIDFromContext(c)
	tpl, err := h.Svc.UpdateTemplate(c.Request.Context(), adminID, c.Param("id"), TemplatePatch{
		DisplayName: req.DisplayName,
		Description: req.Description,
		IsActive:    req.IsActive,
		IsPremium:   req.IsPremium,
	})
	if err != nil {
		h.respondError(c, err, "failed to update template")
		return
	}
	respond.OK(c, gin.H{"template": tpl})
}

func (h *Handler) settings(c *gin.Context) {
	list, err := h.Svc.Settings(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "failed to load settings")
		return
	}
	byKey := make(map[string]Setting, len(list))
	for _, s := range list {
		byKey[s.Key] = s
	}
	respond.OK(c, gin.H{"settings": byKey})
}

func (h *Handler) updateSettings(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid settings payload", err.Error())
		return
	}
	if len(values) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "no settings provided", nil)
		return
	}
	adminID := middleware.UserIDFromContext(c)
	if err := h.Svc.UpdateSettings(c.Request.Context(), adminID, values); err != nil {
		h.respondError(c, err, "failed to update settings")
		return
	}
	respond.OK(c, gin.H{"updated": len(values)})
}

func (h *Handler) auditLog(c *gin.Context) {
	opts := AuditLogOptions{
		Page:    queryInt(c, "page", 1),
		PerPage: queryInt(c, "perPage", 50),
		Action:  c.Query("action"),
	}
	page, err := h.Svc.AuditLog(c.Request.Context(), opts)
	if err != nil {
		h.respondError(c, err, "failed to load audit log")
		return
	}
	respond.OK(c, page)
}

func (h *Handler) respondError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "record not found", nil)
	case errors.Is(err, ErrSelfAction):
		respond.Error(c, http.StatusBadRequest, "self_action", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", message, nil)
	}
}

func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
