// Package admin serves the back-office endpoints: dashboard statistics,
// user management, resume oversight, template flags, settings, and the
// audit trail of admin actions.
package admin

import (
	"time"

	"github.com/mahdi67436/cv-maker-web/internal/templates"
	"github.com/mahdi67436/cv-maker-web/internal/users"
)

// Totals are the headline counters on the dashboard.
type Totals struct {
	TotalUsers      int `json:"totalUsers"`
	TotalResumes    int `json:"totalResumes"`
	TotalDownloads  int `json:"totalDownloads"`
	NewUsersToday   int `json:"newUsersToday"`
	NewResumesToday int `json:"newResumesToday"`
}

// DayCount is one point on a per-day series, Date formatted YYYY-MM-DD.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ActivityEntry is a user activity row joined with the user's email.
type ActivityEntry struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	IPAddress string    `json:"ipAddress"`
	CreatedAt time.Time `json:"createdAt"`
}

type Dashboard struct {
	Stats            Totals               `json:"stats"`
	RecentActivities []ActivityEntry      `json:"recentActivities"`
	Growth           []DayCount           `json:"growth"`
	TopTemplates     []templates.Template `json:"topTemplates"`
}

// ResumeSummary is the admin-facing view of a resume, without sections.
type ResumeSummary struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Title         string    `json:"title"`
	Template      string    `json:"template"`
	IsPublic      bool      `json:"isPublic"`
	IsArchived    bool      `json:"isArchived"`
	ViewCount     int       `json:"viewCount"`
	DownloadCount int       `json:"downloadCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type UserPage struct {
	Users   []users.User `json:"users"`
	Total   int          `json:"total"`
	Page    int          `json:"page"`
	PerPage int          `json:"perPage"`
	Pages   int          `json:"pages"`
}

type UserDetail struct {
	User       users.User      `json:"user"`
	Resumes    []ResumeSummary `json:"resumes"`
	Activities []ActivityEntry `json:"activities"`
}

type ResumePage struct {
	Resumes []ResumeSummary `json:"resumes"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"perPage"`
	Pages   int             `json:"pages"`
}

type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AuditEntry struct {
	ID         int64     `json:"id"`
	AdminID    string    `json:"adminId"`
	Action     string    `json:"action"`
	TargetType string    `json:"targetType"`
	TargetID   string    `json:"targetId"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"createdAt"`
}

type AuditPage struct {
	Entries []AuditEntry `json:"auditLogs"`
	Total   int          `json:"total"`
	Page    int          `json:"page"`
	PerPage int          `json:"perPage"`
}

type UserStatusCounts struct {
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Admins   int `json:"admin"`
	Total    int `json:"total"`
}

type Stats struct {
	Downloads     int              `json:"downloads"`
	Users         UserStatusCounts `json:"users"`
	TemplateUsage map[string]int   `json:"templateUsage"`
	ActivityData  []DayCount       `json:"activityData"`
}
