package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mahdi67436/cv-maker-web/internal/shared/auth"
	"github.com/mahdi67436/cv-maker-web/internal/shared/server/middleware"
	"github.com/mahdi67436/cv-maker-web/internal/shared/server/respond"
)

type Handler struct {
	Svc    *Service
	Tokens *auth.TokenService
}

func NewHandler(svc *Service, tokens *auth.TokenService) *Handler {
	return &Handler{Svc: svc, Tokens: tokens}
}

// RegisterPublicRoutes wires the unauthenticated auth endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup, limiter *middleware.RateLimiter) {
	rg.POST("/register", middleware.RateLimit(limiter, "register", middleware.PerHour(5)), h.register)
	rg.POST("/login", middleware.RateLimit(limiter, "login", middleware.PerMinute(10)), h.login)
	rg.POST("/refresh", middleware.RequireRefresh(h.Tokens), h.refresh)
}

// RegisterProtectedRoutes wires endpoints that require an access token.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/logout", h.logout)
	rg.GET("/me", h.me)
	rg.PUT("/profile", h.updateProfile)
	rg.PUT("/change-password", h.changePassword)
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid registration payload", err.Error())
		return
	}

	user, err := h.Svc.Register(c.Request.Context(), RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusConflict, "email_taken", "email already registered", nil)
		case errors.Is(err, auth.ErrWeakPassword):
			respond.Error(c, http.StatusBadRequest, "weak_password", "password must be at least 8 characters with uppercase, lowercase, digit, and special character", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to register", nil)
		}
		return
	}

	h.respondWithTokens(c, http.StatusCreated, user)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid login payload", err.Error())
		return
	}

	user, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", nil)
		case errors.Is(err, ErrAccountDisabled):
			respond.Error(c, http.StatusForbidden, "account_disabled", "account is disabled", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log in", nil)
		}
		return
	}

	h.respondWithTokens(c, http.StatusOK, user)
}

func (h *Handler) refresh(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "account no longer available", nil)
		return
	}
	if !user.IsActive {
		respond.Error(c, http.StatusForbidden, "account_disabled", "account is disabled", nil)
		return
	}

	access, err := h.Tokens.Sign(user.ID, user.Email, user.FullName(), user.Role, auth.TokenAccess)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}
	respond.OK(c, gin.H{"accessToken": access})
}

func (h *Handler) logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context(), middleware.UserIDFromContext(c), c.ClientIP(), c.Request.UserAgent())
	respond.OK(c, gin.H{"message": "logged out"})
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.Svc.GetByID(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.OK(c, user)
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid profile payload", err.Error())
		return
	}

	user, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.UserIDFromContext(c), ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update profile", nil)
		return
	}
	respond.OK(c, user)
}

func (h *Handler) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid password payload", err.Error())
		return
	}

	err := h.Svc.ChangePassword(c.Request.Context(), middleware.UserIDFromContext(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "current password is incorrect", nil)
		case errors.Is(err, auth.ErrWeakPassword):
			respond.Error(c, http.StatusBadRequest, "weak_password", "password must be at least 8 characters with uppercase, lowercase, digit, and special character", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to change password", nil)
		}
		return
	}
	respond.OK(c, gin.H{"message": "password updated"})
}

func (h *Handler) respondWithTokens(c *gin.Context, status int, user User) {
	access, err := h.Tokens.Sign(user.ID, user.Email, user.FullName(), user.Role, auth.TokenAccess)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}
	refresh, err := h.Tokens.Sign(user.ID, user.Email, user.FullName(), user.Role, auth.TokenRefresh)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}
	respond.JSON(c, status, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	})
}
