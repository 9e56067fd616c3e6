// Package bootstrap builds the application dependency graph: storage,
// repositories, services, and handlers, driven by config.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mahdi67436/cv-maker-web/internal/admin"
	"github.com/mahdi67436/cv-maker-web/internal/aiwriter"
	"github.com/mahdi67436/cv-maker-web/internal/export"
	"github.com/mahdi67436/cv-maker-web/internal/extract"
	"github.com/mahdi67436/cv-maker-web/internal/resumes"
	"github.com/mahdi67436/cv-maker-web/internal/shared/auth"
	"github.com/mahdi67436/cv-maker-web/internal/shared/config"
	"github.com/mahdi67436/cv-maker-web/internal/shared/server"
	"github.com/mahdi67436/cv-maker-web/internal/shared/server/middleware"
	"github.com/mahdi67436/cv-maker-web/internal/shared/storage/db"
	"github.com/mahdi67436/cv-maker-web/internal/shared/storage/object"
	localstore "github.com/mahdi67436/cv-maker-web/internal/shared/storage/object/local"
	s3store "github.com/mahdi67436/cv-maker-web/internal/shared/storage/object/s3"
	"github.com/mahdi67436/cv-maker-web/internal/shared/telemetry"
	"github.com/mahdi67436/cv-maker-web/internal/shared/validate"
	"github.com/mahdi67436/cv-maker-web/internal/templates"
	"github.com/mahdi67436/cv-maker-web/internal/users"
)

// App holds the wired dependency graph.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	DB      *sql.DB
	Store   object.ObjectStore
	Tokens  *auth.TokenService
	Limiter *middleware.RateLimiter

	UsersRepo     users.Repo
	ResumesRepo   resumes.Repo
	TemplatesRepo templates.Repo
	AdminRepo     admin.Repo

	UsersService     *users.Service
	ResumesService   *resumes.Service
	TemplatesService *templates.Service
	WriterService    *aiwriter.Service
	ExportService    *export.Service
	AdminService     *admin.Service

	UsersHandler     *users.Handler
	GoogleAuth       *users.GoogleHandler
	ResumesHandler   *resumes.Handler
	TemplatesHandler *templates.Handler
	WriterHandler    *aiwriter.Handler
	ExtractHandler   *extract.Handler
	ExportHandler    *export.Handler
	AdminHandler     *admin.Handler
}

// Build prepares all dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	telemetry.Init(cfg.LogLevel, cfg.LogConsole)
	validate.Register()

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}
	hasher := auth.NewHasher(cfg.BcryptCost, cfg.PasswordPepper)

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Store:   store,
		Tokens:  tokens,
		Limiter: middleware.NewRateLimiter(nil),
	}
	buildRepos(app)
	buildServices(app, hasher)
	buildHandlers(app)

	if err := ensureAdminAccount(ctx, app); err != nil {
		telemetry.Warn("bootstrap.admin_account", map[string]any{"error": err.Error()})
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		Tokens:           tokens,
		Limiter:          app.Limiter,
		UsersHandler:     app.UsersHandler,
		GoogleAuth:       app.GoogleAuth,
		ResumesHandler:   app.ResumesHandler,
		TemplatesHandler: app.TemplatesHandler,
		WriterHandler:    app.WriterHandler,
		ExtractHandler:   app.ExtractHandler,
		ExportHandler:    app.ExportHandler,
		AdminHandler:     app.AdminHandler,
	})
	return app, nil
}

// buildDB connects and migrates. Outside production a missing or broken
// database degrades to memory repositories instead of failing startup.
func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.Env == "production" {
			return nil, errors.New("DATABASE_URL is required in production")
		}
		telemetry.Warn("bootstrap.db", map[string]any{"mode": "memory"})
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		telemetry.Warn("bootstrap.db", map[string]any{"mode": "memory", "error": err.Error()})
		return nil, nil
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if cfg.Env == "production" {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		telemetry.Warn("bootstrap.migrations", map[string]any{"mode": "memory", "error": err.Error()})
		return nil, nil
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, fmt.Errorf("s3 store: %w", err)
		}
		return store, nil
	}
	return localstore.New(cfg.LocalStoreDir), nil
}

func buildRepos(app *App) {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
		app.TemplatesRepo = &templates.PGRepo{DB: app.DB}
		app.AdminRepo = &admin.PGRepo{DB: app.DB}
		return
	}
	app.UsersRepo = users.NewMemoryRepo()
	app.ResumesRepo = resumes.NewMemoryRepo()
	app.TemplatesRepo = templates.NewMemoryRepo()
	app.AdminRepo = admin.NewMemoryRepo()
}

func buildServices(app *App, hasher *auth.Hasher) {
	cfg := app.Config

	app.UsersService = users.NewService(app.UsersRepo, hasher)
	app.TemplatesService = templates.NewService(app.TemplatesRepo)

	app.ResumesService = resumes.NewService(app.ResumesRepo)
	app.ResumesService.Usage = app.TemplatesService

	var completer aiwriter.Completer
	if cfg.AIAPIKey != "" {
		client, err := aiwriter.NewClient(cfg.AIAPIKey, cfg.AIModel, cfg.AIBaseURL)
		if err != nil {
			telemetry.Warn("bootstrap.ai", map[string]any{"error": err.Error()})
		} else {
			completer = client
		}
	}
	app.WriterService = aiwriter.NewService(completer)

	app.ExportService = export.NewService(app.ResumesService, app.Store, export.ChromePDF{ExecPath: cfg.ChromePath})
	app.AdminService = admin.NewService(app.AdminRepo, app.TemplatesRepo)
}

func buildHandlers(app *App) {
	cfg := app.Config

	app.UsersHandler = users.NewHandler(app.UsersService, app.Tokens)
	app.GoogleAuth = users.NewGoogleHandler(app.UsersService, app.Tokens,
		cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL)
	app.ResumesHandler = resumes.NewHandler(app.ResumesService)
	app.TemplatesHandler = templates.NewHandler(app.TemplatesService)
	app.WriterHandler = aiwriter.NewHandler(app.WriterService)
	app.WriterHandler.Resumes = app.ResumesService
	app.ExtractHandler = extract.NewHandler(app.Store)
	app.ExportHandler = export.NewHandler(app.ExportService)
	app.AdminHandler = admin.NewHandler(app.AdminService)
}

// ensureAdminAccount provisions the bootstrap admin when credentials are
// configured, or promotes an existing account with the configured email.
func ensureAdminAccount(ctx context.Context, app *App) error {
	cfg := app.Config
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	existing, err := app.UsersRepo.GetByEmail(ctx, cfg.AdminEmail)
	switch {
	case err == nil:
		if existing.Role == "admin" {
			return nil
		}
		existing.Role = "admin"
		return app.UsersRepo.Update(ctx, existing)
	case errors.Is(err, users.ErrNotFound):
		user, err := app.UsersService.Register(ctx, users.RegisterInput{
			Email:     cfg.AdminEmail,
			Password:  cfg.AdminPassword,
			FirstName: "Admin",
		})
		if err != nil {
			return err
		}
		user.Role = "admin"
		return app.UsersRepo.Update(ctx, user)
	default:
		return err
	}
}
