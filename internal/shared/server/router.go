// Package server assembles the HTTP surface: middleware chain, route
// groups, and the health endpoint.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mahdi67436/cv-maker-web/internal/admin"
	"github.com/mahdi67436/cv-maker-web/internal/aiwriter"
	"github.com/mahdi67436/cv-maker-web/internal/export"
	"github.com/mahdi67436/cv-maker-web/internal/extract"
	"github.com/mahdi67436/cv-maker-web/internal/resumes"
	"github.com/mahdi67436/cv-maker-web/internal/shared/auth"
	"github.com/mahdi67436/cv-maker-web/internal/shared/config"
	"github.com/mahdi67436/cv-maker-web/internal/shared/metrics"
	"github.com/mahdi67436/cv-maker-web/internal/shared/server/middleware"
	"github.com/mahdi67436/cv-maker-web/internal/shared/server/respond"
	"github.com/mahdi67436/cv-maker-web/internal/templates"
	"github.com/mahdi67436/cv-maker-web/internal/users"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config  config.Config
	Tokens  *auth.TokenService
	Limiter *middleware.RateLimiter

	UsersHandler     *users.Handler
	GoogleAuth       *users.GoogleHandler
	ResumesHandler   *resumes.Handler
	TemplatesHandler *templates.Handler
	WriterHandler    *aiwriter.Handler
	ExtractHandler   *extract.Handler
	ExportHandler    *export.Handler
	AdminHandler     *admin.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	authed := middleware.Auth(deps.Tokens)

	authPublic := api.Group("/auth")
	deps.UsersHandler.RegisterPublicRoutes(authPublic, deps.Limiter)
	deps.GoogleAuth.RegisterRoutes(authPublic)
	authProtected := api.Group("/auth")
	authProtected.Use(authed)
	deps.UsersHandler.RegisterProtectedRoutes(authProtected)

	resumesPublic := api.Group("/resumes")
	deps.ResumesHandler.RegisterPublicRoutes(resumesPublic)
	resumesProtected := api.Group("/resumes")
	resumesProtected.Use(authed)
	deps.ResumesHandler.RegisterProtectedRoutes(resumesProtected, deps.Limiter)
	deps.ExportHandler.RegisterRoutes(resumesProtected, deps.Limiter)

	deps.TemplatesHandler.RegisterRoutes(api.Group("/templates"))

	aiPublic := api.Group("/ai")
	deps.WriterHandler.RegisterPublicRoutes(aiPublic, deps.Limiter)
	aiProtected := api.Group("/ai")
	aiProtected.Use(authed)
	deps.WriterHandler.RegisterProtectedRoutes(aiProtected, deps.Limiter)

	extractGroup := api.Group("/extract")
	extractGroup.Use(authed)
	deps.ExtractHandler.RegisterRoutes(extractGroup, deps.Limiter)

	adminGroup := api.Group("/admin")
	adminGroup.Use(authed)
	deps.AdminHandler.RegisterRoutes(adminGroup, deps.Limiter)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
