package admin

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mahdi67436/cv-maker-web/internal/users"
)

type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, email, password_hash, first_name, last_name, role, is_active, last_login_at, created_at, updated_at`

const resumeSummaryColumns = `id, user_id, title, template, is_public, is_archived, view_count, download_count, created_at, updated_at`

func (r *PGRepo) Totals(ctx context.Context, today time.Time) (Totals, error) {
	const query = `
SELECT
    (SELECT count(*) FROM users),
    (SELECT count(*) FROM resumes),
    (SELECT COALESCE(SUM(download_count), 0) FROM resumes),
    (SELECT count(*) FROM users WHERE created_at >= $1 AND created_at < $1 + interval '1 day'),
    (SELECT count(*) FROM resumes WHERE created_at >= $1 AND created_at < $1 + interval '1 day')`
	var t Totals
	err := r.DB.QueryRowContext(ctx, query, today).Scan(
		&t.TotalUsers,
		&t.TotalResumes,
		&t.TotalDownloads,
		&t.NewUsersToday,
		&t.NewResumesToday,
	)
	return t, err
}

func (r *PGRepo) UsersCreatedByDay(ctx context.Context, since time.Time) (map[string]int, error) {
	const query = `
SELECT to_char(created_at::date, 'YYYY-MM-DD'), count(*)
FROM users
WHERE created_at >= $1
GROUP BY 1`
	return r.countsByDay(ctx, query, since)
}

func (r *PGRepo) ActivitiesByDay(ctx context.Context, since time.Time) (map[string]int, error) {
	const query = `
SELECT to_char(created_at::date, 'YYYY-MM-DD'), count(*)
FROM user_activities
WHERE created_at >= $1
GROUP BY 1`
	return r.countsByDay(ctx, query, since)
}

func (r *PGRepo) countsByDay(ctx context.Context, query string, since time.Time) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var day string
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, err
		}
		counts[day] = count
	}
	return counts, rows.Err()
}

func (r *PGRepo) RecentActivities(ctx context.Context, limit int) ([]ActivityEntry, error) {
	const query = `
SELECT a.user_id, COALESCE(u.email, ''), a.action, a.details, a.ip_address, a.created_at
FROM user_activities a
LEFT JOIN users u ON u.id = a.user_id
ORDER BY a.created_at DESC
LIMIT $1`
	return r.queryActivities(ctx, query, limit)
}

func (r *PGRepo) UserActivities(ctx context.Context, userID string, limit int) ([]ActivityEntry, error) {
	const query = `
SELECT a.user_id, COALESCE(u.email, ''), a.action, a.details, a.ip_address, a.created_at
FROM user_activities a
LEFT JOIN users u ON u.id = a.user_id
WHERE a.user_id = $1
ORDER BY a.created_at DESC
LIMIT $2`
	return r.queryActivities(ctx, query, userID, limit)
}

func (r *PGRepo) queryActivities(ctx context.Context, query string, args ...any) ([]ActivityEntry, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ActivityEntry
	for rows.Next() {
		var e ActivityEntry
		if err := rows.Scan(&e.UserID, &e.Email, &e.Action, &e.Details, &e.IPAddress, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// userSortColumns whitelists sortable columns, anything else falls back to
// created_at.
var userSortColumns = map[string]string{
	"created_at":    "created_at",
	"email":         "email",
	"first_name":    "first_name",
	"last_login_at": "last_login_at",
}

func (r *PGRepo) ListUsers(ctx context.Context, opts ListUsersOptions) ([]users.User, int, error) {
	where := "TRUE"
	args := []any{}
	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (email ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d)", n, n, n)
	}
	switch opts.Status {
	case "active":
		where += " AND is_active = TRUE"
	case "inactive":
		where += " AND is_active = FALSE"
	case "admin":
		where += " AND role = 'admin'"
	}

	var total int
	countQuery := "SELECT count(*) FROM users WHERE " + where
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortCol, ok := userSortColumns[opts.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	order := "DESC"
	if opts.SortOrder == "asc" {
		order = "ASC"
	}

	args = append(args, opts.PerPage, (opts.Page-1)*opts.PerPage)
	query := fmt.Sprintf(
		"SELECT %s FROM users WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		userColumns, where, sortCol, order, len(args)-1, len(args),
	)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []users.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (r *PGRepo) GetUser(ctx context.Context, userID string) (users.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = $1 LIMIT 1"
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, userID))
	if err == sql.ErrNoRows {
		return users.User{}, ErrNotFound
	}
	return u, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (users.User, error) {
	var u users.User
	var lastLogin sql.NullTime
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Role,
		&u.IsActive,
		&lastLogin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return users.User{}, err
	}
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return u, nil
}

func (r *PGRepo) SetUserActive(ctx context.Context, userID string, active bool) error {
	const query = `UPDATE users SET is_active = $2, updated_at = now() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, userID, active)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteUser removes the user row; resumes and activities cascade.
func (r *PGRepo) DeleteUser(ctx context.Context, userID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) UserResumes(ctx context.Context, userID string) ([]ResumeSummary, error) {
	query := "SELECT " + resumeSummaryColumns + " FROM resumes WHERE user_id = $1 ORDER BY updated_at DESC"
	return r.queryResumeSummaries(ctx, query, userID)
}

func (r *PGRepo) ListResumes(ctx context.Context, opts ListResumesOptions) ([]ResumeSummary, int, error) {
	where := "TRUE"
	args := []any{}
	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (title ILIKE $%d OR full_name ILIKE $%d)", n, n)
	}
	switch opts.Status {
	case "public":
		where += " AND is_public = TRUE"
	case "private":
		where += " AND is_public = FALSE"
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT count(*) FROM resumes WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, opts.PerPage, (opts.Page-1)*opts.PerPage)
	query := fmt.Sprintf(
		"SELECT %s FROM resumes WHERE %s ORDER BY updated_at DESC LIMIT $%d OFFSET $%d",
		resumeSummaryColumns, where, len(args)-1, len(args),
	)
	out, err := r.queryResumeSummaries(ctx, query, args...)
	return out, total, err
}

func (r *PGRepo) queryResumeSummaries(ctx context.Context, query string, args ...any) ([]ResumeSummary, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ResumeSummary
	for rows.Next() {
		var s ResumeSummary
		var updated sql.NullTime
		err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.Title,
			&s.Template,
			&s.IsPublic,
			&s.IsArchived,
			&s.ViewCount,
			&s.DownloadCount,
			&s.CreatedAt,
			&updated,
		)
		if err != nil {
			return nil, err
		}
		if updated.Valid {
			s.UpdatedAt = updated.Time
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PGRepo) UserStatusCounts(ctx context.Context) (UserStatusCounts, error) {
	const query = `
SELECT
    count(*) FILTER (WHERE is_active),
    count(*) FILTER (WHERE NOT is_active),
    count(*) FILTER (WHERE role = 'admin'),
    count(*)
FROM users`
	var c UserStatusCounts
	err := r.DB.QueryRowContext(ctx, query).Scan(&c.Active, &c.Inactive, &c.Admins, &c.Total)
	return c, err
}

func (r *PGRepo) TemplateUsage(ctx context.Context) (map[string]int, error) {
	const query = `SELECT template, count(*) FROM resumes GROUP BY template`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usage := make(map[string]int)
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		usage[name] = count
	}
	return usage, rows.Err()
}

func (r *PGRepo) Settings(ctx context.Context) ([]Setting, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT key, value, updated_at FROM admin_settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PGRepo) SetSetting(ctx context.Context, key, value string) error {
	const query = `
INSERT INTO admin_settings (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query, key, value)
	return err
}

func (r *PGRepo) RecordAudit(ctx context.Context, entry AuditEntry) error {
	const query = `
INSERT INTO audit_logs (admin_id, action, target_type, target_id, details, created_at)
VALUES ($1, $2, $3, $4, $5, now())`
	_, err := r.DB.ExecContext(ctx, query,
		entry.AdminID,
		entry.Action,
		entry.TargetType,
		entry.TargetID,
		entry.Details,
	)
	return err
}

func (r *PGRepo) AuditLog(ctx context.Context, opts AuditLogOptions) ([]AuditEntry, int, error) {
	where := "TRUE"
	args := []any{}
	if opts.Action != "" {
		args = append(args, opts.Action)
		where += fmt.Sprintf(" AND action = $%d", len(args))
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT count(*) FROM audit_logs WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, opts.PerPage, (opts.Page-1)*opts.PerPage)
	query := fmt.Sprintf(`
SELECT id, admin_id, action, target_type, target_id, details, created_at
FROM audit_logs
WHERE %s
ORDER BY created_at DESC
LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.AdminID, &e.Action, &e.TargetType, &e.TargetID, &e.Details, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
