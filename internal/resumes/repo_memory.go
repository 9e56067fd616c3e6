package resumes

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryRepo keeps resumes in process memory. It backs tests and local
// runs without a database.
type MemoryRepo struct {
	mu      sync.RWMutex
	resumes map[string]Resume
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{resumes: map[string]Resume{}}
}

func (m *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	resume.CreatedAt = now
	resume.UpdatedAt = now
	m.resumes[resume.ID] = resume
	return nil
}

func (m *MemoryRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	resume, ok := m.resumes[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return cloneResume(resume), nil
}

func (m *MemoryRepo) GetByShareToken(ctx context.Context, token string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	if token == "" {
		return Resume{}, ErrNotFound
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, resume := range m.resumes {
		if resume.ShareToken == token {
			return cloneResume(resume), nil
		}
	}
	return Resume{}, ErrNotFound
}

func (m *MemoryRepo) ListByUser(ctx context.Context, userID string, includeArchived bool) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Resume
	for _, resume := range m.resumes {
		if resume.UserID != userID {
			continue
		}
		if resume.IsArchived && !includeArchived {
			continue
		}
		out = append(out, cloneResume(resume))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (m *MemoryRepo) Update(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.resumes[resume.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Title = resume.Title
	stored.Template = resume.Template
	stored.FullName = resume.FullName
	stored.Email = resume.Email
	stored.Phone = resume.Phone
	stored.City = resume.City
	stored.Country = resume.Country
	stored.Website = resume.Website
	stored.LinkedIn = resume.LinkedIn
	stored.GitHub = resume.GitHub
	stored.Summary = resume.Summary
	stored.UpdatedAt = time.Now().UTC()
	m.resumes[resume.ID] = stored
	return nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.resumes[id]; !ok {
		return ErrNotFound
	}
	delete(m.resumes, id)
	return nil
}

func (m *MemoryRepo) SetSharing(ctx context.Context, id string, isPublic bool, shareToken string) error {
	return m.mutate(ctx, id, func(r *Resume) {
		r.IsPublic = isPublic
		r.ShareToken = shareToken
	})
}

func (m *MemoryRepo) SetArchived(ctx context.Context, id string, archived bool) error {
	return m.mutate(ctx, id, func(r *Resume) {
		r.IsArchived = archived
	})
}

func (m *MemoryRepo) IncrementViews(ctx context.Context, id string) error {
	return m.mutate(ctx, id, func(r *Resume) {
		r.ViewCount++
	})
}

func (m *MemoryRepo) IncrementDownloads(ctx context.Context, id string) error {
	return m.mutate(ctx, id, func(r *Resume) {
		r.DownloadCount++
	})
}

func (m *MemoryRepo) SetATSAnalysis(ctx context.Context, id string, score int, keywords []string) error {
	return m.mutate(ctx, id, func(r *Resume) {
		s := score
		r.ATSScore = &s
		r.ATSKeywords = append([]string(nil), keywords...)
	})
}

func (m *MemoryRepo) AddExperience(ctx context.Context, e Experience) error {
	return m.mutate(ctx, e.ResumeID, func(r *Resume) {
		r.Experiences = append(r.Experiences, e)
	})
}

func (m *MemoryRepo) UpdateExperience(ctx context.Context, e Experience) error {
	return m.mutateEntry(ctx, e.ResumeID, func(r *Resume) bool {
		for i := range r.Experiences {
			if r.Experiences[i].ID == e.ID {
				r.Experiences[i] = e
				return true
			}
		}
		return false
	})
}

func (m *MemoryRepo) AddEducation(ctx context.Context, e Education) error {
	return m.mutate(ctx, e.ResumeID, func(r *Resume) {
		r.Education = append(r.Education, e)
	})
}

func (m *MemoryRepo) UpdateEducation(ctx context.Context, e Education) error {
	return m.mutateEntry(ctx, e.ResumeID, func(r *Resume) bool {
		for i := range r.Education {
			if r.Education[i].ID == e.ID {
				r.Education[i] = e
				return true
			}
		}
		return false
	})
}

func (m *MemoryRepo) AddSkill(ctx context.Context, s Skill) error {
	return m.mutate(ctx, s.ResumeID, func(r *Resume) {
		r.Skills = append(r.Skills, s)
	})
}

func (m *MemoryRepo) UpdateSkill(ctx context.Context, s Skill) error {
	return m.mutateEntry(ctx, s.ResumeID, func(r *Resume) bool {
		for i := range r.Skills {
			if r.Skills[i].ID == s.ID {
				r.Skills[i] = s
				return true
			}
		}
		return false
	})
}

func (m *MemoryRepo) AddProject(ctx context.Context, p Project) error {
	return m.mutate(ctx, p.ResumeID, func(r *Resume) {
		r.Projects = append(r.Projects, p)
	})
}

func (m *MemoryRepo) UpdateProject(ctx context.Context, p Project) error {
	return m.mutateEntry(ctx, p.ResumeID, func(r *Resume) bool {
		for i := range r.Projects {
			if r.Projects[i].ID == p.ID {
				r.Projects[i] = p
				return true
			}
		}
		return false
	})
}

func (m *MemoryRepo) AddCertification(ctx context.Context, c Certification) error {
	return m.mutate(ctx, c.ResumeID, func(r *Resume) {
		r.Certifications = append(r.Certifications, c)
	})
}

func (m *MemoryRepo) UpdateCertification(ctx context.Context, c Certification) error {
	return m.mutateEntry(ctx, c.ResumeID, func(r *Resume) bool {
		for i := range r.Certifications {
			if r.Certifications[i].ID == c.ID {
				r.Certifications[i] = c
				return true
			}
		}
		return false
	})
}

func (m *MemoryRepo) DeleteSectionEntry(ctx context.Context, section Section, resumeID, entryID string) error {
	switch section {
	case SectionExperience:
		return m.mutateEntry(ctx, resumeID, func(r *Resume) bool {
			for i := range r.Experiences {
				if r.Experiences[i].ID == entryID {
					r.Experiences = append(r.Experiences[:i], r.Experiences[i+1:]...)
					return true
				}
			}
			return false
		})
	case SectionEducation:
		return m.mutateEntry(ctx, resumeID, func(r *Resume) bool {
			for i := range r.Education {
				if r.Education[i].ID == entryID {
					r.Education = append(r.Education[:i], r.Education[i+1:]...)
					return true
				}
			}
			return false
		})
	case SectionSkills:
		return m.mutateEntry(ctx, resumeID, func(r *Resume) bool {
			for i := range r.Skills {
				if r.Skills[i].ID == entryID {
					r.Skills = append(r.Skills[:i], r.Skills[i+1:]...)
					return true
				}
			}
			return false
		})
	case SectionProjects:
		return m.mutateEntry(ctx, resumeID, func(r *Resume) bool {
			for i := range r.Projects {
				if r.Projects[i].ID == entryID {
					r.Projects = append(r.Projects[:i], r.Projects[i+1:]...)
					return true
				}
			}
			return false
		})
	case SectionCertification:
		return m.mutateEntry(ctx, resumeID, func(r *Resume) bool {
			for i := range r.Certifications {
				if r.Certifications[i].ID == entryID {
					r.Certifications = append(r.Certifications[:i], r.Certifications[i+1:]...)
					return true
				}
			}
			return false
		})
	default:
		return fmt.Errorf("unknown section %q", section)
	}
}

func (m *MemoryRepo) mutate(ctx context.Context, id string, fn func(*Resume)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	resume, ok := m.resumes[id]
	if !ok {
		return ErrNotFound
	}
	fn(&resume)
	resume.UpdatedAt = time.Now().UTC()
	m.resumes[id] = resume
	return nil
}

// mutateEntry is mutate for section entries: fn reports whether the entry
// was found, and a missing entry maps to ErrNotFound.
func (m *MemoryRepo) mutateEntry(ctx context.Context, id string, fn func(*Resume) bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	resume, ok := m.resumes[id]
	if !ok {
		return ErrNotFound
	}
	if !fn(&resume) {
		return ErrNotFound
	}
	resume.UpdatedAt = time.Now().UTC()
	m.resumes[id] = resume
	return nil
}

func cloneResume(r Resume) Resume {
	out := r
	out.Experiences = append([]Experience(nil), r.Experiences...)
	out.Education = append([]Education(nil), r.Education...)
	out.Skills = append([]Skill(nil), r.Skills...)
	out.Projects = append([]Project(nil), r.Projects...)
	out.Certifications = append([]Certification(nil), r.Certifications...)
	if r.ATSScore != nil {
		score := *r.ATSScore
		out.ATSScore = &score
	}
	out.ATSKeywords = append([]string(nil), r.ATSKeywords...)
	return out
}
