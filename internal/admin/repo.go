package admin

import (
	"context"
	"time"

	"github.com/mahdi67436/cv-maker-web/internal/users"
)

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "record not found" }

type ListUsersOptions struct {
	Page      int
	PerPage   int
	Search    string
	Status    string // active, inactive, admin, or empty
	SortBy    string
	SortOrder string
}

type ListResumesOptions struct {
	Page    int
	PerPage int
	Search  string
	Status  string // public, private, or empty
}

type AuditLogOptions struct {
	Page    int
	PerPage int
	Action  string
}

type Repo interface {
	Totals(ctx context.Context, today time.Time) (Totals, error)
	UsersCreatedByDay(ctx context.Context, since time.Time) (map[string]int, error)
	RecentActivities(ctx context.Context, limit int) ([]ActivityEntry, error)

	ListUsers(ctx context.Context, opts ListUsersOptions) ([]users.User, int, error)
	GetUser(ctx context.Context, userID string) (users.User, error)
	UserResumes(ctx context.Context, userID string) ([]ResumeSummary, error)
	UserActivities(ctx context.Context, userID string, limit int) ([]ActivityEntry, error)
	SetUserActive(ctx context.Context, userID string, active bool) error
	DeleteUser(ctx context.Context, userID string) error

	ListResumes(ctx context.Context, opts ListResumesOptions) ([]ResumeSummary, int, error)

	UserStatusCounts(ctx context.Context) (UserStatusCounts, error)
	TemplateUsage(ctx context.Context) (map[string]int, error)
	ActivitiesByDay(ctx context.Context, since time.Time) (map[string]int, error)

	Settings(ctx context.Context) ([]Setting, error)
	SetSetting(ctx context.Context, key, value string) error

	RecordAudit(ctx context.Context, entry AuditEntry) error
	AuditLog(ctx context.Context, opts AuditLogOptions) ([]AuditEntry, int, error)
}
