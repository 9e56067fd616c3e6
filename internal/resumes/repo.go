package resumes

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "resume not found" }

// Section identifies one of the list-valued resume sections.
type Section string

const (
	SectionExperience    Section = "experiences"
	SectionEducation     Section = "education"
	SectionSkills        Section = "skills"
	SectionProjects      Section = "projects"
	SectionCertification Section = "certifications"
)

type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, id string) (Resume, error)
	GetByShareToken(ctx context.Context, token string) (Resume, error)
	ListByUser(ctx context.Context, userID string, includeArchived bool) ([]Resume, error)
	Update(ctx context.Context, resume Resume) error
	Delete(ctx context.Context, id string) error

	SetSharing(ctx context.Context, id string, isPublic bool, shareToken string) error
	SetArchived(ctx context.Context, id string, archived bool) error
	IncrementViews(ctx context.Context, id string) error
	IncrementDownloads(ctx context.Context, id string) error
	SetATSAnalysis(ctx context.Context, id string, score int, keywords []string) error

	AddExperience(ctx context.Context, e Experience) error
	UpdateExperience(ctx context.Context, e Experience) error
	AddEducation(ctx context.Context, e Education) error
	UpdateEducation(ctx context.Context, e Education) error
	AddSkill(ctx context.Context, s Skill) error
	UpdateSkill(ctx context.Context, s Skill) error
	AddProject(ctx context.Context, p Project) error
	UpdateProject(ctx context.Context, p Project) error
	AddCertification(ctx context.Context, c Certification) error
	UpdateCertification(ctx context.Context, c Certification) error
	DeleteSectionEntry(ctx context.Context, section Section, resumeID, entryID string) error
}
