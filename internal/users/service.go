package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/mahdi67436/cv-maker-web/internal/shared/auth"
	"github.com/mahdi67436/cv-maker-web/internal/shared/telemetry"
)

var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrAccountDisabled = errors.New("account is disabled")

type Service struct {
	Repo   Repo
	Hasher *auth.Hasher
}

func NewService(repo Repo, hasher *auth.Hasher) *Service {
	return &Service{Repo: repo, Hasher: hasher}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	IPAddress string
	UserAgent string
}

// Register creates an account after validating password strength.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	if s == nil || s.Repo == nil || s.Hasher == nil {
		return User{}, errors.New("users service not configured")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return User{}, errors.New("email is required")
	}
	if err := auth.ValidatePassword(in.Password); err != nil {
		return User{}, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         "user",
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	s.logActivity(ctx, user.ID, "register", "", in.IPAddress, in.UserAgent)
	telemetry.Info("user.registered", map[string]any{"user_id": user.ID})
	return user, nil
}

// Login verifies credentials and records the login.
func (s *Service) Login(ctx context.Context, email, password, ip, userAgent string) (User, error) {
	if s == nil || s.Repo == nil || s.Hasher == nil {
		return User{}, errors.New("users service not configured")
	}
	user, err := s.Repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if !s.Hasher.Compare(user.PasswordHash, password) {
		return User{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return User{}, ErrAccountDisabled
	}

	if err := s.Repo.SetLastLogin(ctx, user.ID); err != nil {
		telemetry.Error("user.login.touch_failed", map[string]any{"user_id": user.ID, "error": err.Error()})
	}
	s.logActivity(ctx, user.ID, "login", "", ip, userAgent)
	return user, nil
}

// LoginWithGoogle finds or provisions the account behind a verified Google
// profile and records the login. Provisioned accounts carry no password
// hash, so password login stays disabled until the user sets one.
func (s *Service) LoginWithGoogle(ctx context.Context, email, firstName, lastName, ip, userAgent string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return User{}, errors.New("email is required")
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrNotFound):
		user = User{
			ID:        uuid.NewString(),
			Email:     email,
			FirstName: strings.TrimSpace(firstName),
			LastName:  strings.TrimSpace(lastName),
			Role:      "user",
			IsActive:  true,
		}
		if err := s.Repo.Create(ctx, user); err != nil {
			return User{}, err
		}
		s.logActivity(ctx, user.ID, "register", "google", ip, userAgent)
		telemetry.Info("user.registered", map[string]any{"user_id": user.ID, "provider": "google"})
	case err != nil:
		return User{}, err
	}

	if !user.IsActive {
		return User{}, ErrAccountDisabled
	}
	if err := s.Repo.SetLastLogin(ctx, user.ID); err != nil {
		telemetry.Error("user.login.touch_failed", map[string]any{"user_id": user.ID, "error": err.Error()})
	}
	s.logActivity(ctx, user.ID, "login", "google", ip, userAgent)
	return user, nil
}

// Logout only records the event; tokens are stateless.
func (s *Service) Logout(ctx context.Context, userID, ip, userAgent string) {
	s.logActivity(ctx, userID, "logout", "", ip, userAgent)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

type ProfileUpdate struct {
	FirstName string
	LastName  string
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}
	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)
	if err := s.Repo.Update(ctx, user); err != nil {
		return User{}, err
	}
	s.logActivity(ctx, userID, "profile_update", "", "", "")
	return s.Repo.GetByID(ctx, userID)
}

// ChangePassword verifies the current password before storing a new hash.
func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.Hasher.Compare(user.PasswordHash, current) {
		return ErrInvalidCredentials
	}
	if err := auth.ValidatePassword(next); err != nil {
		return err
	}
	hash, err := s.Hasher.Hash(next)
	if err != nil {
		return err
	}
	if err := s.Repo.SetPassword(ctx, userID, hash); err != nil {
		return err
	}
	s.logActivity(ctx, userID, "password_change", "", "", "")
	return nil
}

func (s *Service) logActivity(ctx context.Context, userID, action, details, ip, userAgent string) {
	err := s.Repo.RecordActivity(ctx, Activity{
		UserID:    userID,
		Action:    action,
		Details:   details,
		IPAddress: ip,
		UserAgent: userAgent,
	})
	if err != nil {
		telemetry.Error("user.activity.record_failed", map[string]any{
			"user_id": userID,
			"action":  action,
			"error":   err.Error(),
		})
	}
}
