package admin

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mahdi67436/cv-maker-web/internal/users"
)

// MemoryRepo keeps the admin views in process memory. It backs tests and
// the storage-less server mode.
type MemoryRepo struct {
	mu         sync.RWMutex
	users      map[string]users.User
	resumes    map[string]ResumeSummary
	activities []ActivityEntry
	settings   map[string]Setting
	audit      []AuditEntry
	nextAudit  int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:    make(map[string]users.User),
		resumes:  make(map[string]ResumeSummary),
		settings: make(map[string]Setting),
	}
}

// PutUser seeds or replaces a user row.
func (r *MemoryRepo) PutUser(u users.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
}

// PutResume seeds or replaces a resume summary row.
func (r *MemoryRepo) PutResume(s ResumeSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resumes[s.ID] = s
}

// AddActivity appends a user activity row.
func (r *MemoryRepo) AddActivity(e ActivityEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activities = append(r.activities, e)
}

func (r *MemoryRepo) Totals(ctx context.Context, today time.Time) (Totals, error) {
	if err := ctx.Err(); err != nil {
		return Totals{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	t := Totals{TotalUsers: len(r.users), TotalResumes: len(r.resumes)}
	day := today.Format("2006-01-02")
	for _, u := range r.users {
		if u.CreatedAt.Format("2006-01-02") == day {
			t.NewUsersToday++
		}
	}
	for _, s := range r.resumes {
		t.TotalDownloads += s.DownloadCount
		if s.CreatedAt.Format("2006-01-02") == day {
			t.NewResumesToday++
		}
	}
	return t, nil
}

func (r *MemoryRepo) UsersCreatedByDay(ctx context.Context, since time.Time) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, u := range r.users {
		if !u.CreatedAt.Before(since) {
			counts[u.CreatedAt.Format("2006-01-02")]++
		}
	}
	return counts, nil
}

func (r *MemoryRepo) ActivitiesByDay(ctx context.Context, since time.Time) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, e := range r.activities {
		if !e.CreatedAt.Before(since) {
			counts[e.CreatedAt.Format("2006-01-02")]++
		}
	}
	return counts, nil
}

func (r *MemoryRepo) RecentActivities(ctx context.Context, limit int) ([]ActivityEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedActivities(func(ActivityEntry) bool { return true }, limit), nil
}

func (r *MemoryRepo) UserActivities(ctx context.Context, userID string, limit int) ([]ActivityEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedActivities(func(e ActivityEntry) bool { return e.UserID == userID }, limit), nil
}

func (r *MemoryRepo) sortedActivities(keep func(ActivityEntry) bool, limit int) []ActivityEntry {
	var out []ActivityEntry
	for _, e := range r.activities {
		if keep(e) {
			if e.Email == "" {
				if u, ok := r.users[e.UserID]; ok {
					e.Email = u.Email
				}
			}
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r *MemoryRepo) ListUsers(ctx context.Context, opts ListUsersOptions) ([]users.User, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []users.User
	search := strings.ToLower(opts.Search)
	for _, u := range r.users {
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Email), search) &&
			!strings.Contains(strings.ToLower(u.FirstName), search) &&
			!strings.Contains(strings.ToLower(u.LastName), search) {
			continue
		}
		switch opts.Status {
		case "active":
			if !u.IsActive {
				continue
			}
		case "inactive":
			if u.IsActive {
				continue
			}
		case "admin":
			if u.Role != "admin" {
				continue
			}
		}
		matched = append(matched, u)
	}

	asc := opts.SortOrder == "asc"
	sort.Slice(matched, func(i, j int) bool {
		var less bool
		switch opts.SortBy {
		case "email":
			less = matched[i].Email < matched[j].Email
		default:
			less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})

	total := len(matched)
	start := (opts.Page - 1) * opts.PerPage
	if start >= total {
		return nil, total, nil
	}
	end := min(start+opts.PerPage, total)
	return matched[start:end], total, nil
}

func (r *MemoryRepo) GetUser(ctx context.Context, userID string) (users.User, error) {
	if err := ctx.Err(); err != nil {
		return users.User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[userID]
	if !ok {
		return users.User{}, ErrNotFound
	}
	return u, nil
}

func (r *MemoryRepo) SetUserActive(ctx context.Context, userID string, active bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.IsActive = active
	r.users[userID] = u
	return nil
}

func (r *MemoryRepo) DeleteUser(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return ErrNotFound
	}
	delete(r.users, userID)
	for id, s := range r.resumes {
		if s.UserID == userID {
			delete(r.resumes, id)
		}
	}
	return nil
}

func (r *MemoryRepo) UserResumes(ctx context.Context, userID string) ([]ResumeSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []ResumeSummary
	for _, s := range r.resumes {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *MemoryRepo) ListResumes(ctx context.Context, opts ListResumesOptions) ([]ResumeSummary, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []ResumeSummary
	search := strings.ToLower(opts.Search)
	for _, s := range r.resumes {
		if search != "" && !strings.Contains(strings.ToLower(s.Title), search) {
			continue
		}
		switch opts.Status {
		case "public":
			if !s.IsPublic {
				continue
			}
		case "private":
			if s.IsPublic {
				continue
			}
		}
		matched = append(matched, s)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].UpdatedAt.After(matched[j].UpdatedAt) })

	total := len(matched)
	start := (opts.Page - 1) * opts.PerPage
	if start >= total {
		return nil, total, nil
	}
	end := min(start+opts.PerPage, total)
	return matched[start:end], total, nil
}

func (r *MemoryRepo) UserStatusCounts(ctx context.Context) (UserStatusCounts, error) {
	if err := ctx.Err(); err != nil {
		return UserStatusCounts{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var c UserStatusCounts
	for _, u := range r.users {
		c.Total++
		if u.IsActive {
			c.Active++
		} else {
			c.Inactive++
		}
		if u.Role == "admin" {
			c.Admins++
		}
	}
	return c, nil
}

func (r *MemoryRepo) TemplateUsage(ctx context.Context) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	usage := make(map[string]int)
	for _, s := range r.resumes {
		usage[s.Template]++
	}
	return usage, nil
}

func (r *MemoryRepo) Settings(ctx context.Context) ([]Setting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Setting
	for _, s := range r.settings {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *MemoryRepo) SetSetting(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings[key] = Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	return nil
}

func (r *MemoryRepo) RecordAudit(ctx context.Context, entry AuditEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextAudit++
	entry.ID = r.nextAudit
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.audit = append(r.audit, entry)
	return nil
}

func (r *MemoryRepo) AuditLog(ctx context.Context, opts AuditLogOptions) ([]AuditEntry, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []AuditEntry
	for _, e := range r.audit {
		if opts.Action != "" && e.Action != opts.Action {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := len(matched)
	start := (opts.Page - 1) * opts.PerPage
	if start >= total {
		return nil, total, nil
	}
	end := min(start+opts.PerPage, total)
	return matched[start:end], total, nil
}
