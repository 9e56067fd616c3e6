package resumes

type createRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Template string `json:"template" binding:"omitempty,template"`
	FullName string `json:"fullName" binding:"omitempty,max=200"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"omitempty,phone"`
	City     string `json:"city" binding:"omitempty,max=100"`
	Country  string `json:"country" binding:"omitempty,max=100"`
	Website  string `json:"website" binding:"omitempty,max=300"`
	LinkedIn string `json:"linkedin" binding:"omitempty,max=300"`
	GitHub   string `json:"github" binding:"omitempty,max=300"`
	Summary  string `json:"summary" binding:"omitempty,max=2000"`
}

type updateRequest struct {
	Title    *string `json:"title" binding:"omitempty,max=200"`
	Template *string `json:"template" binding:"omitempty,template"`
	FullName *string `json:"fullName" binding:"omitempty,max=200"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,phone"`
	City     *string `json:"city" binding:"omitempty,max=100"`
	Country  *string `json:"country" binding:"omitempty,max=100"`
	Website  *string `json:"website" binding:"omitempty,max=300"`
	LinkedIn *string `json:"linkedin" binding:"omitempty,max=300"`
	GitHub   *string `json:"github" binding:"omitempty,max=300"`
	Summary  *string `json:"summary" binding:"omitempty,max=2000"`
}

type experienceRequest struct {
	JobTitle    string `json:"jobTitle" binding:"required,max=200"`
	Company     string `json:"company" binding:"omitempty,max=200"`
	Location    string `json:"location" binding:"omitempty,max=200"`
	StartDate   string `json:"startDate" binding:"omitempty,max=40"`
	EndDate     string `json:"endDate" binding:"omitempty,max=40"`
	IsCurrent   bool   `json:"isCurrent"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	SortOrder   int    `json:"sortOrder"`
}

type educationRequest struct {
	Degree       string `json:"degree" binding:"required,max=200"`
	FieldOfStudy string `json:"fieldOfStudy" binding:"omitempty,max=200"`
	Institution  string `json:"institution" binding:"omitempty,max=200"`
	Location     string `json:"location" binding:"omitempty,max=200"`
	StartDate    string `json:"startDate" binding:"omitempty,max=40"`
	EndDate      string `json:"endDate" binding:"omitempty,max=40"`
	GPA          string `json:"gpa" binding:"omitempty,max=20"`
	Description  string `json:"description" binding:"omitempty,max=5000"`
	SortOrder    int    `json:"sortOrder"`
}

type skillRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Category  string `json:"category" binding:"omitempty,max=100"`
	Level     string `json:"level" binding:"omitempty,max=40"`
	SortOrder int    `json:"sortOrder"`
}

type projectRequest struct {
	Name         string `json:"name" binding:"required,max=200"`
	Description  string `json:"description" binding:"omitempty,max=5000"`
	URL          string `json:"url" binding:"omitempty,max=300"`
	Technologies string `json:"technologies" binding:"omitempty,max=500"`
	StartDate    string `json:"startDate" binding:"omitempty,max=40"`
	EndDate      string `json:"endDate" binding:"omitempty,max=40"`
	SortOrder    int    `json:"sortOrder"`
}

type certificationRequest struct {
	Name          string `json:"name" binding:"required,max=200"`
	Issuer        string `json:"issuer" binding:"omitempty,max=200"`
	IssueDate     string `json:"issueDate" binding:"omitempty,max=40"`
	ExpiryDate    string `json:"expiryDate" binding:"omitempty,max=40"`
	CredentialID  string `json:"credentialId" binding:"omitempty,max=200"`
	CredentialURL string `json:"credentialUrl" binding:"omitempty,max=300"`
	SortOrder     int    `json:"sortOrder"`
}

type atsCheckRequest struct {
	JobDescription string `json:"jobDescription" binding:"omitempty,max=20000"`
}

// resumeView is the wire shape for a resume: the model plus derived fields.
type resumeView struct {
	Resume
	Completeness int    `json:"completeness"`
	ShareURL     string `json:"shareUrl,omitempty"`
}

func toView(r Resume) resumeView {
	view := resumeView{Resume: r, Completeness: r.Completeness()}
	if r.IsPublic && r.Slug != "" {
		view.ShareURL = "/preview/" + r.Slug
	}
	if !r.IsPublic {
		view.ShareToken = ""
	}
	return view
}

func toViews(rs []Resume) []resumeView {
	out := make([]resumeView, 0, len(rs))
	for _, r := range rs {
		out = append(out, toView(r))
	}
	return out
}

// sharedView strips owner-only fields from a publicly shared resume.
type sharedView struct {
	Title          string          `json:"title"`
	Template       string          `json:"template"`
	FullName       string          `json:"fullName"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	City           string          `json:"city"`
	Country        string          `json:"country"`
	Website        string          `json:"website"`
	LinkedIn       string          `json:"linkedin"`
	GitHub         string          `json:"github"`
	Summary        string          `json:"summary"`
	Experiences    []Experience    `json:"experiences"`
	Education      []Education     `json:"education"`
	Skills         []Skill         `json:"skills"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
}

func toSharedView(r Resume) sharedView {
	return sharedView{
		Title:          r.Title,
		Template:       r.Template,
		FullName:       r.FullName,
		Email:          r.Email,
		Phone:          r.Phone,
		City:           r.City,
		Country:        r.Country,
		Website:        r.Website,
		LinkedIn:       r.LinkedIn,
		GitHub:         r.GitHub,
		Summary:        r.Summary,
		Experiences:    r.Experiences,
		Education:      r.Education,
		Skills:         r.Skills,
		Projects:       r.Projects,
		Certifications: r.Certifications,
	}
}
