package extract

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mahdi67436/cv-maker-web/internal/shared/server/middleware"
	"github.com/mahdi67436/cv-maker-web/internal/shared/server/respond"
	"github.com/mahdi67436/cv-maker-web/internal/shared/storage/object"
)

// 10 MB cap on uploaded resume files.
const maxUploadBytes = 10 << 20

type Handler struct {
	Store object.ObjectStore
}

func NewHandler(store object.ObjectStore) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes wires the upload-and-extract endpoint.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, limiter *middleware.RateLimiter) {
	rg.POST("", middleware.RateLimit(limiter, "extract", middleware.PerHour(20)), h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "file is required", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the 10MB limit", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "could not read file", nil)
		return
	}
	defer file.Close()

	userID := middleware.UserIDFromContext(c)
	key, size, mimeType, err := h.Store.Save(c.Request.Context(), userID, fileHeader.Filename, io.LimitReader(file, maxUploadBytes))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store file", nil)
		return
	}

	text, err := FromStore(c.Request.Context(), h.Store, key, mimeType, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, ErrUnsupportedType) {
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_type", "only PDF and DOCX files are supported", nil)
			return
		}
		respond.Error(c, http.StatusUnprocessableEntity, "extract_failed", "could not extract text from file", nil)
		return
	}

	respond.OK(c, gin.H{
		"fileKey":  key,
		"mimeType": mimeType,
		"size":     size,
		"text":     text,
	})
}
