package templates

import (
	"context"

	"github.com/mahdi67436/cv-maker-web/internal/shared/telemetry"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// List returns the active catalog for pickers.
func (s *Service) List(ctx context.Context) ([]Template, error) {
	return s.Repo.List(ctx, true)
}

func (s *Service) Get(ctx context.Context, id string) (Template, error) {
	return s.Repo.GetByID(ctx, id)
}

// RecordUsage bumps the usage counter for a template. Failures are logged
// and swallowed so resume creation never fails on a counter.
func (s *Service) RecordUsage(ctx context.Context, name string) {
	if err := s.Repo.IncrementUsage(ctx, name); err != nil {
		telemetry.Warn("template.usage_count", map[string]any{"template": name, "error": err.Error()})
	}
}
