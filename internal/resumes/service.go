package resumes

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/mahdi67436/cv-maker-web/internal/ats"
	"github.com/mahdi67436/cv-maker-web/internal/shared/metrics"
	"github.com/mahdi67436/cv-maker-web/internal/shared/telemetry"
	"github.com/mahdi67436/cv-maker-web/internal/shared/util"
	"github.com/mahdi67436/cv-maker-web/internal/shared/validate"
)

var ErrUnknownTemplate = errors.New("unknown template")

// UsageRecorder receives template usage events when resumes are created.
type UsageRecorder interface {
	RecordUsage(ctx context.Context, name string)
}

type Service struct {
	Repo  Repo
	Usage UsageRecorder
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

type CreateInput struct {
	Title    string
	Template string
	FullName string
	Email    string
	Phone    string
	City     string
	Country  string
	Website  string
	LinkedIn string
	GitHub   string
	Summary  string
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Resume, error) {
	template := in.Template
	if template == "" {
		template = "modern"
	}
	if !validate.KnownTemplate(template) {
		return Resume{}, ErrUnknownTemplate
	}
	resume := Resume{
		ID:       uuid.NewString(),
		UserID:   userID,
		Title:    strings.TrimSpace(in.Title),
		Slug:     util.UniqueSlug(in.Title),
		Template: template,
		FullName: in.FullName,
		Email:    in.Email,
		Phone:    in.Phone,
		City:     in.City,
		Country:  in.Country,
		Website:  in.Website,
		LinkedIn: in.LinkedIn,
		GitHub:   in.GitHub,
		Summary:  in.Summary,
	}
	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	metrics.IncResumeCreated()
	if s.Usage != nil {
		s.Usage.RecordUsage(ctx, template)
	}
	return s.Repo.GetByID(ctx, resume.ID)
}

func (s *Service) List(ctx context.Context, userID string, includeArchived bool) ([]Resume, error) {
	return s.Repo.ListByUser(ctx, userID, includeArchived)
}

// Get returns the resume only to its owner. A resume owned by someone else
// is reported as not found rather than forbidden.
func (s *Service) Get(ctx context.Context, userID, id string) (Resume, error) {
	resume, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	if resume.UserID != userID {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

type UpdateInput struct {
	Title    *string
	Template *string
	FullName *string
	Email    *string
	Phone    *string
	City     *string
	Country  *string
	Website  *string
	LinkedIn *string
	GitHub   *string
	Summary  *string
}

func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) (Resume, error) {
	resume, err := s.Get(ctx, userID, id)
	if err != nil {
		return Resume{}, err
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		resume.Title = strings.TrimSpace(*in.Title)
	}
	if in.Template != nil {
		if !validate.KnownTemplate(*in.Template) {
			return Resume{}, ErrUnknownTemplate
		}
		resume.Template = *in.Template
	}
	if in.FullName != nil {
		resume.FullName = *in.FullName
	}
	if in.Email != nil {
		resume.Email = *in.Email
	}
	if in.Phone != nil {
		resume.Phone = *in.Phone
	}
	if in.City != nil {
		resume.City = *in.City
	}
	if in.Country != nil {
		resume.Country = *in.Country
	}
	if in.Website != nil {
		resume.Website = *in.Website
	}
	if in.LinkedIn != nil {
		resume.LinkedIn = *in.LinkedIn
	}
	if in.GitHub != nil {
		resume.GitHub = *in.GitHub
	}
	if in.Summary != nil {
		resume.Summary = *in.Summary
	}
	if err := s.Repo.Update(ctx, resume); err != nil {
		return Resume{}, err
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

// Duplicate copies a resume with all its sections. The copy starts private,
// unarchived, with fresh counters and no score.
func (s *Service) Duplicate(ctx context.Context, userID, id string) (Resume, error) {
	src, err := s.Get(ctx, userID, id)
	if err != nil {
		return Resume{}, err
	}
	title := src.Title + " (Copy)"
	copyResume := Resume{
		ID:       uuid.NewString(),
		UserID:   userID,
		Title:    title,
		Slug:     util.UniqueSlug(title),
		Template: src.Template,
		FullName: src.FullName,
		Email:    src.Email,
		Phone:    src.Phone,
		City:     src.City,
		Country:  src.Country,
		Website:  src.Website,
		LinkedIn: src.LinkedIn,
		GitHub:   src.GitHub,
		Summary:  src.Summary,
	}
	if err := s.Repo.Create(ctx, copyResume); err != nil {
		return Resume{}, err
	}
	for _, e := range src.Experiences {
		e.ID = uuid.NewString()
		e.ResumeID = copyResume.ID
		if err := s.Repo.AddExperience(ctx, e); err != nil {
			return Resume{}, err
		}
	}
	for _, e := range src.Education {
		e.ID = uuid.NewString()
		e.ResumeID = copyResume.ID
		if err := s.Repo.AddEducation(ctx, e); err != nil {
			return Resume{}, err
		}
	}
	for _, sk := range src.Skills {
		sk.ID = uuid.NewString()
		sk.ResumeID = copyResume.ID
		if err := s.Repo.AddSkill(ctx, sk); err != nil {
			return Resume{}, err
		}
	}
	for _, p := range src.Projects {
		p.ID = uuid.NewString()
		p.ResumeID = copyResume.ID
		if err := s.Repo.AddProject(ctx, p); err != nil {
			return Resume{}, err
		}
	}
	for _, c := range src.Certifications {
		c.ID = uuid.NewString()
		c.ResumeID = copyResume.ID
		if err := s.Repo.AddCertification(ctx, c); err != nil {
			return Resume{}, err
		}
	}
	return s.Repo.GetByID(ctx, copyResume.ID)
}

// ToggleShare flips the public flag. A share token is minted the first time
// the resume goes public and kept afterwards so existing links stay stable.
func (s *Service) ToggleShare(ctx context.Context, userID, id string) (Resume, error) {
	resume, err := s.Get(ctx, userID, id)
	if err != nil {
		return Resume{}, err
	}
	isPublic := !resume.IsPublic
	token := resume.ShareToken
	if isPublic && token == "" {
		token = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	if err := s.Repo.SetSharing(ctx, id, isPublic, token); err != nil {
		return Resume{}, err
	}
	resume.IsPublic = isPublic
	resume.ShareToken = token
	return resume, nil
}

// GetShared resolves a public share link. Archived or re-privatized resumes
// are not served even when the token still matches.
func (s *Service) GetShared(ctx context.Context, token string) (Resume, error) {
	resume, err := s.Repo.GetByShareToken(ctx, token)
	if err != nil {
		return Resume{}, err
	}
	if !resume.IsPublic || resume.IsArchived {
		return Resume{}, ErrNotFound
	}
	if err := s.Repo.IncrementViews(ctx, resume.ID); err != nil {
		telemetry.Warn("resume.view_count", map[string]any{"resumeId": resume.ID, "error": err.Error()})
	} else {
		resume.ViewCount++
	}
	return resume, nil
}

func (s *Service) Archive(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.Repo.SetArchived(ctx, id, true)
}

func (s *Service) Unarchive(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.Repo.SetArchived(ctx, id, false)
}

// RecordDownload bumps the download counter after a successful export.
func (s *Service) RecordDownload(ctx context.Context, id string) {
	if err := s.Repo.IncrementDownloads(ctx, id); err != nil {
		telemetry.Warn("resume.download_count", map[string]any{"resumeId": id, "error": err.Error()})
	}
}

func (s *Service) AddExperience(ctx context.Context, userID, resumeID string, e Experience) (Experience, error) {
	if _, err := s.Get(ctx, userID, resumeID); err != nil {
		return Experience{}, err
	}
	e.ID = uuid.NewString()
	e.ResumeID = resumeID
	if err := s.Repo.AddExperience(ctx, e); err != nil {
		return Experience{}, err
	}
	return e, nil
}

func (s *Service) UpdateExperience(ctx context.Context, userID, resumeID string, e Experience) (Experience, error) {
	if _, err := s.Get(ctx, userID, resumeID); err != nil {
		return Experience{}, err
	}
	e.ResumeID = resumeID
	if err := s.Repo.UpdateExperience(ctx, e); err != nil {
		return Experience{}, err
	}
	return e, nil
}

func (s *Service) AddEducation(ctx context.Context, userID, resumeID string, e Education) (Education, error) {
	if _, err := s.Get(ctx, userID, resumeID); err != nil {
		return Education{}, err
	}
	e.ID = uuid.NewString()
	e.ResumeID = resumeID
	if err := s.Repo.AddEducation(ctx, e); err != nil {
		return Education{}, err
	}
	return e, nil
}

func (s *Service) UpdateEducation(ctx context.Context, userID, resumeID string, e Education) (Education, error) {
	if _, err := s.Get(ctx, userID, resumeID); err != nil {
		return Education{}, err
	}
	e.ResumeID = resumeID
	if err := s.Repo.UpdateEducation(ctx, e); err != nil {
		return Education{}, err
	}
	return e, nil
}

func (s *Service) AddSkill(ctx context.Context, userID, resumeID string, sk Skill) (Skill, error) {
	if _, err := s.Get(ctx, userID, resumeID); err != nil {
		return Skill{}, err
	}
	sk.ID = uuid.NewString()
	sk.ResumeID = resumeID
	if err := s.Repo.AddSkill(ctx, sk); err != nil {
		return Skill{}, err
	}
	return sk, nil
}

func (s *Service) UpdateSkill(ctx context.Context, userID, resumeID string, sk Skill) (Skill, error) {
	if _, err := s.Get(ctx, userID, resumeID); err != nil {
		return Skill{}, err
	}
	sk.ResumeID = resumeID
	if err := s.Repo.UpdateSkill(ctx, sk); err != nil {
		return Skill{}, err
	}
	return sk, nil
}

func (s *Service) AddProject(ctx context.Context, userID, resumeID string, p Project) (Project, error) {
	if _, err := s.Get(ctx, userID, resumeID); err != nil {
		return Project{}, err
	}
	p.ID = uuid.NewString()
	p.ResumeID = resumeID
	if err := s.Repo.AddProject(ctx, p); err != nil {
		return Project{}, err
	}
	return p, nil
}

func (s *Service) UpdateProject(ctx context.Context, userID, resumeID string, p Project) (Project, error) {
	if _, err := s.Get(ctx, userID, resumeID); err != nil {
		return Project{}, err
	}
	p.ResumeID = resumeID
	if err := s.Repo.UpdateProject(ctx, p); err != nil {
		return Project{}, err
	}
	return p, nil
}

func (s *Service) AddCertification(ctx context.Context, userID, resumeID string, c Certification) (Certification, error) {
	if _, err := s.Get(ctx, userID, resumeID); err != nil {
		return Certification{}, err
	}
	c.ID = uuid.NewString()
	c.ResumeID = resumeID
	if err := s.Repo.AddCertification(ctx, c); err != nil {
		return Certification{}, err
	}
	return c, nil
}

func (s *Service) UpdateCertification(ctx context.Context, userID, resumeID string, c Certification) (Certification, error) {
	if _, err := s.Get(ctx, userID, resumeID); err != nil {
		return Certification{}, err
	}
	c.ResumeID = resumeID
	if err := s.Repo.UpdateCertification(ctx, c); err != nil {
		return Certification{}, err
	}
	return c, nil
}

func (s *Service) DeleteSectionEntry(ctx context.Context, userID, resumeID string, section Section, entryID string) error {
	if _, err := s.Get(ctx, userID, resumeID); err != nil {
		return err
	}
	return s.Repo.DeleteSectionEntry(ctx, section, resumeID, entryID)
}

// AnalyzeATS scores the resume and persists the overall number and matched
// keywords so lists can show them without re-running the analysis.
func (s *Service) AnalyzeATS(ctx context.Context, userID, id, jobDescription string) (ats.Result, error) {
	resume, err := s.Get(ctx, userID, id)
	if err != nil {
		return ats.Result{}, err
	}
	result := ats.Analyze(resume.Snapshot(), jobDescription)
	if err := s.Repo.SetATSAnalysis(ctx, id, result.OverallScore, result.Keywords); err != nil {
		telemetry.Warn("resume.ats_score_persist", map[string]any{"resumeId": id, "error": err.Error()})
	}
	return result, nil
}
