package resumes

import (
	"time"

	"github.com/mahdi67436/cv-maker-web/internal/ats"
)

type Resume struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Template string `json:"template"`

	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Website  string `json:"website"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Summary  string `json:"summary"`

	IsPublic      bool   `json:"isPublic"`
	IsArchived    bool   `json:"isArchived"`
	ShareToken    string `json:"shareToken,omitempty"`
	ViewCount     int    `json:"viewCount"`
	DownloadCount int    `json:"downloadCount"`
	ATSScore      *int   `json:"atsScore,omitempty"`

	// ATSKeywords holds the matched keywords from the latest analysis.
	ATSKeywords []string `json:"atsKeywords,omitempty"`

	Experiences    []Experience    `json:"experiences"`
	Education      []Education     `json:"education"`
	Skills         []Skill         `json:"skills"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Experience struct {
	ID          string `json:"id"`
	ResumeID    string `json:"-"`
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	IsCurrent   bool   `json:"isCurrent"`
	Description string `json:"description"`
	SortOrder   int    `json:"sortOrder"`
}

type Education struct {
	ID           string `json:"id"`
	ResumeID     string `json:"-"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	Institution  string `json:"institution"`
	Location     string `json:"location"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	GPA          string `json:"gpa"`
	Description  string `json:"description"`
	SortOrder    int    `json:"sortOrder"`
}

type Skill struct {
	ID        string `json:"id"`
	ResumeID  string `json:"-"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Level     string `json:"level"`
	SortOrder int    `json:"sortOrder"`
}

type Project struct {
	ID           string `json:"id"`
	ResumeID     string `json:"-"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	URL          string `json:"url"`
	Technologies string `json:"technologies"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	SortOrder    int    `json:"sortOrder"`
}

type Certification struct {
	ID            string `json:"id"`
	ResumeID      string `json:"-"`
	Name          string `json:"name"`
	Issuer        string `json:"issuer"`
	IssueDate     string `json:"issueDate"`
	ExpiryDate    string `json:"expiryDate"`
	CredentialID  string `json:"credentialId"`
	CredentialURL string `json:"credentialUrl"`
	SortOrder     int    `json:"sortOrder"`
}

// Completeness reports how much of the resume is filled in, as a percentage
// over six tracked sections.
func (r Resume) Completeness() int {
	filled := 0
	if r.FullName != "" {
		filled++
	}
	if r.Email != "" {
		filled++
	}
	if r.Summary != "" {
		filled++
	}
	if len(r.Experiences) > 0 {
		filled++
	}
	if len(r.Education) > 0 {
		filled++
	}
	if len(r.Skills) > 0 {
		filled++
	}
	return filled * 100 / 6
}

// Snapshot flattens the resume into the view the scoring engine consumes.
func (r Resume) Snapshot() ats.Snapshot {
	snap := ats.Snapshot{
		FullName: r.FullName,
		Email:    r.Email,
		Phone:    r.Phone,
		City:     r.City,
		Country:  r.Country,
		Summary:  r.Summary,
	}
	for _, exp := range r.Experiences {
		snap.Experiences = append(snap.Experiences, ats.Experience{
			JobTitle:    exp.JobTitle,
			Company:     exp.Company,
			Description: exp.Description,
		})
	}
	for _, edu := range r.Education {
		snap.Education = append(snap.Education, ats.Education{
			Degree:      edu.Degree,
			Institution: edu.Institution,
			Description: edu.Description,
		})
	}
	for _, sk := range r.Skills {
		snap.Skills = append(snap.Skills, ats.Skill{
			Name:     sk.Name,
			Category: sk.Category,
			Level:    sk.Level,
		})
	}
	return snap
}
