package export

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mahdi67436/cv-maker-web/internal/resumes"
	"github.com/mahdi67436/cv-maker-web/internal/shared/server/middleware"
	"github.com/mahdi67436/cv-maker-web/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the download endpoints to the protected resumes
// group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, limiter *middleware.RateLimiter) {
	limit := middleware.RateLimit(limiter, "export", middleware.PerHour(30))
	rg.GET("/:id/export/pdf", limit, h.export(func(c *gin.Context, userID, id string) (Document, error) {
		return h.Svc.ExportPDF(c.Request.Context(), userID, id)
	}))
	rg.GET("/:id/export/docx", limit, h.export(func(c *gin.Context, userID, id string) (Document, error) {
		return h.Svc.ExportDOCX(c.Request.Context(), userID, id)
	}))
	rg.GET("/:id/export/html", limit, h.export(func(c *gin.Context, userID, id string) (Document, error) {
		return h.Svc.ExportHTML(c.Request.Context(), userID, id)
	}))
}

func (h *Handler) export(run func(c *gin.Context, userID, id string) (Document, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserIDFromContext(c)
		doc, err := run(c, userID, c.Param("id"))
		if err != nil {
			if errors.Is(err, resumes.ErrNotFound) {
				respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
				return
			}
			respond.Error(c, http.StatusInternalServerError, "export_failed", "failed to export resume", nil)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
		c.Data(http.StatusOK, doc.ContentType, doc.Data)
	}
}
