package admin

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/mahdi67436/cv-maker-web/internal/shared/telemetry"
	"github.com/mahdi67436/cv-maker-web/internal/templates"
)

// ErrSelfAction guards admins from deactivating or deleting themselves.
var ErrSelfAction = errors.New("cannot change your own account")

const (
	growthDays   = 30
	activityDays = 7
)

type Service struct {
	Repo      Repo
	Templates templates.Repo
	now       func() time.Time
}

func NewService(repo Repo, tpls templates.Repo) *Service {
	return &Service{Repo: repo, Templates: tpls, now: time.Now}
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	today := s.today()

	totals, err := s.Repo.Totals(ctx, today)
	if err != nil {
		return Dashboard{}, err
	}

	since := today.AddDate(0, 0, -(growthDays - 1))
	created, err := s.Repo.UsersCreatedByDay(ctx, since)
	if err != nil {
		return Dashboard{}, err
	}

	activities, err := s.Repo.RecentActivities(ctx, 20)
	if err != nil {
		return Dashboard{}, err
	}

	tpls, err := s.Templates.List(ctx, false)
	if err != nil {
		return Dashboard{}, err
	}
	sort.Slice(tpls, func(i, j int) bool { return tpls[i].UsageCount > tpls[j].UsageCount })
	if len(tpls) > 5 {
		tpls = tpls[:5]
	}

	return Dashboard{
		Stats:            totals,
		RecentActivities: activities,
		Growth:           fillSeries(created, growthDays, today),
		TopTemplates:     tpls,
	}, nil
}

func (s *Service) ListUsers(ctx context.Context, opts ListUsersOptions) (UserPage, error) {
	opts.Page, opts.PerPage = normalizePage(opts.Page, opts.PerPage, 20)

	list, total, err := s.Repo.ListUsers(ctx, opts)
	if err != nil {
		return UserPage{}, err
	}
	return UserPage{
		Users:   list,
		Total:   total,
		Page:    opts.Page,
		PerPage: opts.PerPage,
		Pages:   pageCount(total, opts.PerPage),
	}, nil
}

func (s *Service) UserDetail(ctx context.Context, userID string) (UserDetail, error) {
	user, err := s.Repo.GetUser(ctx, userID)
	if err != nil {
		return UserDetail{}, err
	}
	resumes, err := s.Repo.UserResumes(ctx, userID)
	if err != nil {
		return UserDetail{}, err
	}
	activities, err := s.Repo.UserActivities(ctx, userID, 50)
	if err != nil {
		return UserDetail{}, err
	}
	return UserDetail{User: user, Resumes: resumes, Activities: activities}, nil
}

// ToggleUserStatus flips the user's active flag and reports the new value.
func (s *Service) ToggleUserStatus(ctx context.Context, adminID, userID string) (bool, error) {
	if adminID == userID {
		return false, ErrSelfAction
	}
	user, err := s.Repo.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	active := !user.IsActive
	if err := s.Repo.SetUserActive(ctx, userID, active); err != nil {
		return false, err
	}
	s.audit(ctx, AuditEntry{
		AdminID:    adminID,
		Action:     "user_status_change",
		TargetType: "user",
		TargetID:   userID,
		Details:    statusWord(active),
	})
	return active, nil
}

func (s *Service) DeleteUser(ctx context.Context, adminID, userID string) error {
	if adminID == userID {
		return ErrSelfAction
	}
	user, err := s.Repo.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteUser(ctx, userID); err != nil {
		return err
	}
	s.audit(ctx, AuditEntry{
		AdminID:    adminID,
		Action:     "user_delete",
		TargetType: "user",
		TargetID:   userID,
		Details:    user.Email,
	})
	return nil
}

func (s *Service) ListResumes(ctx context.Context, opts ListResumesOptions) (ResumePage, error) {
	opts.Page, opts.PerPage = normalizePage(opts.Page, opts.PerPage, 20)

	list, total, err := s.Repo.ListResumes(ctx, opts)
	if err != nil {
		return ResumePage{}, err
	}
	return ResumePage{
		Resumes: list,
		Total:   total,
		Page:    opts.Page,
		PerPage: opts.PerPage,
		Pages:   pageCount(total, opts.PerPage),
	}, nil
}

func (s *Service) ListTemplates(ctx context.Context) ([]templates.Template, error) {
	list, err := s.Templates.List(ctx, false)
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// TemplatePatch carries the optional template fields an admin may change.
type TemplatePatch struct {
	DisplayName *string
	Description *string
	IsActive    *bool
	IsPremium   *bool
}

func (s *Service) UpdateTemplate(ctx context.Context, adminID, id string, patch TemplatePatch) (templates.Template, error) {
	tpl, err := s.Templates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, templates.ErrNotFound) {
			return templates.Template{}, ErrNotFound
		}
		return templates.Template{}, err
	}
	if patch.DisplayName != nil {
		tpl.DisplayName = *patch.DisplayName
	}
	if patch.Description != nil {
		tpl.Description = *patch.Description
	}
	if patch.IsActive != nil {
		tpl.IsActive = *patch.IsActive
	}
	if patch.IsPremium != nil {
		tpl.IsPremium = *patch.IsPremium
	}
	if err := s.Templates.Update(ctx, tpl); err != nil {
		return templates.Template{}, err
	}
	s.audit(ctx, AuditEntry{
		AdminID:    adminID,
		Action:     "template_update",
		TargetType: "template",
		TargetID:   id,
		Details:    tpl.Name,
	})
	return tpl, nil
}

func (s *Service) Settings(ctx context.Context) ([]Setting, error) {
	return s.Repo.Settings(ctx)
}

func (s *Service) UpdateSettings(ctx context.Context, adminID string, values map[string]string) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := s.Repo.SetSetting(ctx, key, values[key]); err != nil {
			return err
		}
	}
	s.audit(ctx, AuditEntry{
		AdminID:    adminID,
		Action:     "settings_update",
		TargetType: "settings",
		Details:    strings.Join(keys, ","),
	})
	return nil
}

func (s *Service) AuditLog(ctx context.Context, opts AuditLogOptions) (AuditPage, error) {
	opts.Page, opts.PerPage = normalizePage(opts.Page, opts.PerPage, 50)

	entries, total, err := s.Repo.AuditLog(ctx, opts)
	if err != nil {
		return AuditPage{}, err
	}
	return AuditPage{Entries: entries, Total: total, Page: opts.Page, PerPage: opts.PerPage}, nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	today := s.today()

	totals, err := s.Repo.Totals(ctx, today)
	if err != nil {
		return Stats{}, err
	}
	statuses, err := s.Repo.UserStatusCounts(ctx)
	if err != nil {
		return Stats{}, err
	}
	usage, err := s.Repo.TemplateUsage(ctx)
	if err != nil {
		return Stats{}, err
	}
	since := today.AddDate(0, 0, -(activityDays - 1))
	activity, err := s.Repo.ActivitiesByDay(ctx, since)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		Downloads:     totals.TotalDownloads,
		Users:         statuses,
		TemplateUsage: usage,
		ActivityData:  fillSeries(activity, activityDays, today),
	}, nil
}

// audit records the action without failing the request it describes.
func (s *Service) audit(ctx context.Context, entry AuditEntry) {
	if err := s.Repo.RecordAudit(ctx, entry); err != nil {
		telemetry.Warn("admin.audit", map[string]any{"action": entry.Action, "error": err.Error()})
	}
}

func (s *Service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// fillSeries expands a sparse day-count map into a dense series ending at
// end, oldest day first.
func fillSeries(counts map[string]int, days int, end time.Time) []DayCount {
	out := make([]DayCount, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := end.AddDate(0, 0, -i).Format("2006-01-02")
		out = append(out, DayCount{Date: day, Count: counts[day]})
	}
	return out
}

func normalizePage(page, perPage, def int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = def
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

func statusWord(active bool) string {
	if active {
		return "activated"
	}
	return "deactivated"
}

func pageCount(total, perPage int) int {
	if total == 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
