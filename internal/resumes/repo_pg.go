package resumes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `
id, user_id, title, slug, template, full_name, email, phone, city, country,
website, linkedin, github, summary, is_public, is_archived, share_token,
view_count, download_count, ats_score, ats_keywords, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (id, user_id, title, slug, template, full_name, email, phone, city, country,
                     website, linkedin, github, summary, is_public, is_archived, share_token,
                     created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		resume.ID, resume.UserID, resume.Title, resume.Slug, resume.Template,
		resume.FullName, resume.Email, resume.Phone, resume.City, resume.Country,
		resume.Website, resume.LinkedIn, resume.GitHub, resume.Summary,
		resume.IsPublic, resume.IsArchived, resume.ShareToken,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1 LIMIT 1`
	resume, err := r.scanOne(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return Resume{}, err
	}
	if err := r.loadChildren(ctx, &resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

func (r *PGRepo) GetByShareToken(ctx context.Context, token string) (Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE share_token = $1 AND share_token <> '' LIMIT 1`
	resume, err := r.scanOne(r.DB.QueryRowContext(ctx, query, token))
	if err != nil {
		return Resume{}, err
	}
	if err := r.loadChildren(ctx, &resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, includeArchived bool) ([]Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1`
	if !includeArchived {
		query += ` AND is_archived = FALSE`
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		resume, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadChildren(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *PGRepo) Update(ctx context.Context, resume Resume) error {
	const query = `
UPDATE resumes
SET title = $2, template = $3, full_name = $4, email = $5, phone = $6, city = $7,
    country = $8, website = $9, linkedin = $10, github = $11, summary = $12, updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		resume.ID, resume.Title, resume.Template, resume.FullName, resume.Email,
		resume.Phone, resume.City, resume.Country, resume.Website, resume.LinkedIn,
		resume.GitHub, resume.Summary,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) SetSharing(ctx context.Context, id string, isPublic bool, shareToken string) error {
	const query = `UPDATE resumes SET is_public = $2, share_token = $3, updated_at = now() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, isPublic, shareToken)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) SetArchived(ctx context.Context, id string, archived bool) error {
	const query = `UPDATE resumes SET is_archived = $2, updated_at = now() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, archived)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) IncrementViews(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE resumes SET view_count = view_count + 1 WHERE id = $1`, id)
	return err
}

func (r *PGRepo) IncrementDownloads(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE resumes SET download_count = download_count + 1 WHERE id = $1`, id)
	return err
}

func (r *PGRepo) SetATSAnalysis(ctx context.Context, id string, score int, keywords []string) error {
	const query = `UPDATE resumes SET ats_score = $2, ats_keywords = $3 WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id, score, strings.Join(keywords, ","))
	return err
}

func (r *PGRepo) AddExperience(ctx context.Context, e Experience) error {
	const query = `
INSERT INTO experiences (id, resume_id, job_title, company, location, start_date, end_date, is_current, description, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.ExecContext(ctx, query,
		e.ID, e.ResumeID, e.JobTitle, e.Company, e.Location, e.StartDate, e.EndDate, e.IsCurrent, e.Description, e.SortOrder)
	return err
}

func (r *PGRepo) UpdateExperience(ctx context.Context, e Experience) error {
	const query = `
UPDATE experiences
SET job_title = $3, company = $4, location = $5, start_date = $6, end_date = $7,
    is_current = $8, description = $9, sort_order = $10
WHERE id = $1 AND resume_id = $2`
	res, err := r.DB.ExecContext(ctx, query,
		e.ID, e.ResumeID, e.JobTitle, e.Company, e.Location, e.StartDate, e.EndDate, e.IsCurrent, e.Description, e.SortOrder)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) AddEducation(ctx context.Context, e Education) error {
	const query = `
INSERT INTO education (id, resume_id, degree, field_of_study, institution, location, start_date, end_date, gpa, description, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.DB.ExecContext(ctx, query,
		e.ID, e.ResumeID, e.Degree, e.FieldOfStudy, e.Institution, e.Location, e.StartDate, e.EndDate, e.GPA, e.Description, e.SortOrder)
	return err
}

func (r *PGRepo) UpdateEducation(ctx context.Context, e Education) error {
	const query = `
UPDATE education
SET degree = $3, field_of_study = $4, institution = $5, location = $6, start_date = $7,
    end_date = $8, gpa = $9, description = $10, sort_order = $11
WHERE id = $1 AND resume_id = $2`
	res, err := r.DB.ExecContext(ctx, query,
		e.ID, e.ResumeID, e.Degree, e.FieldOfStudy, e.Institution, e.Location, e.StartDate, e.EndDate, e.GPA, e.Description, e.SortOrder)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) AddSkill(ctx context.Context, s Skill) error {
	const query = `
INSERT INTO skills (id, resume_id, name, category, level, sort_order)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query, s.ID, s.ResumeID, s.Name, s.Category, s.Level, s.SortOrder)
	return err
}

func (r *PGRepo) UpdateSkill(ctx context.Context, s Skill) error {
	const query = `
UPDATE skills SET name = $3, category = $4, level = $5, sort_order = $6
WHERE id = $1 AND resume_id = $2`
	res, err := r.DB.ExecContext(ctx, query, s.ID, s.ResumeID, s.Name, s.Category, s.Level, s.SortOrder)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) AddProject(ctx context.Context, p Project) error {
	const query = `
INSERT INTO projects (id, resume_id, name, description, url, technologies, start_date, end_date, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.ResumeID, p.Name, p.Description, p.URL, p.Technologies, p.StartDate, p.EndDate, p.SortOrder)
	return err
}

func (r *PGRepo) UpdateProject(ctx context.Context, p Project) error {
	const query = `
UPDATE projects
SET name = $3, description = $4, url = $5, technologies = $6, start_date = $7, end_date = $8, sort_order = $9
WHERE id = $1 AND resume_id = $2`
	res, err := r.DB.ExecContext(ctx, query,
		p.ID, p.ResumeID, p.Name, p.Description, p.URL, p.Technologies, p.StartDate, p.EndDate, p.SortOrder)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) AddCertification(ctx context.Context, c Certification) error {
	const query = `
INSERT INTO certifications (id, resume_id, name, issuer, issue_date, expiry_date, credential_id, credential_url, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.ResumeID, c.Name, c.Issuer, c.IssueDate, c.ExpiryDate, c.CredentialID, c.CredentialURL, c.SortOrder)
	return err
}

func (r *PGRepo) UpdateCertification(ctx context.Context, c Certification) error {
	const query = `
UPDATE certifications
SET name = $3, issuer = $4, issue_date = $5, expiry_date = $6, credential_id = $7, credential_url = $8, sort_order = $9
WHERE id = $1 AND resume_id = $2`
	res, err := r.DB.ExecContext(ctx, query,
		c.ID, c.ResumeID, c.Name, c.Issuer, c.IssueDate, c.ExpiryDate, c.CredentialID, c.CredentialURL, c.SortOrder)
	if err != nil {
		return err
	}
	return requireRow(res)
}

var sectionTables = map[Section]string{
	SectionExperience:    "experiences",
	SectionEducation:     "education",
	SectionSkills:        "skills",
	SectionProjects:      "projects",
	SectionCertification: "certifications",
}

func (r *PGRepo) DeleteSectionEntry(ctx context.Context, section Section, resumeID, entryID string) error {
	table, ok := sectionTables[section]
	if !ok {
		return fmt.Errorf("unknown section %q", section)
	}
	query := `DELETE FROM ` + table + ` WHERE id = $1 AND resume_id = $2`
	res, err := r.DB.ExecContext(ctx, query, entryID, resumeID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) scanOne(row *sql.Row) (Resume, error) {
	resume, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

func (r *PGRepo) scanRow(row rowScanner) (Resume, error) {
	var resume Resume
	var atsScore sql.NullInt64
	var atsKeywords string
	var updatedAt sql.NullTime
	err := row.Scan(
		&resume.ID, &resume.UserID, &resume.Title, &resume.Slug, &resume.Template,
		&resume.FullName, &resume.Email, &resume.Phone, &resume.City, &resume.Country,
		&resume.Website, &resume.LinkedIn, &resume.GitHub, &resume.Summary,
		&resume.IsPublic, &resume.IsArchived, &resume.ShareToken,
		&resume.ViewCount, &resume.DownloadCount, &atsScore, &atsKeywords,
		&resume.CreatedAt, &updatedAt,
	)
	if err != nil {
		return Resume{}, err
	}
	if atsScore.Valid {
		score := int(atsScore.Int64)
		resume.ATSScore = &score
	}
	if atsKeywords != "" {
		resume.ATSKeywords = strings.Split(atsKeywords, ",")
	}
	if updatedAt.Valid {
		resume.UpdatedAt = updatedAt.Time
	} else {
		resume.UpdatedAt = time.Now().UTC()
	}
	return resume, nil
}

func (r *PGRepo) loadChildren(ctx context.Context, resume *Resume) error {
	if err := r.loadExperiences(ctx, resume); err != nil {
		return err
	}
	if err := r.loadEducation(ctx, resume); err != nil {
		return err
	}
	if err := r.loadSkills(ctx, resume); err != nil {
		return err
	}
	if err := r.loadProjects(ctx, resume); err != nil {
		return err
	}
	return r.loadCertifications(ctx, resume)
}

func (r *PGRepo) loadExperiences(ctx context.Context, resume *Resume) error {
	const query = `
SELECT id, resume_id, job_title, company, location, start_date, end_date, is_current, description, sort_order
FROM experiences WHERE resume_id = $1 ORDER BY sort_order, id`
	rows, err := r.DB.QueryContext(ctx, query, resume.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var e Experience
		if err := rows.Scan(&e.ID, &e.ResumeID, &e.JobTitle, &e.Company, &e.Location,
			&e.StartDate, &e.EndDate, &e.IsCurrent, &e.Description, &e.SortOrder); err != nil {
			return err
		}
		resume.Experiences = append(resume.Experiences, e)
	}
	return rows.Err()
}

func (r *PGRepo) loadEducation(ctx context.Context, resume *Resume) error {
	const query = `
SELECT id, resume_id, degree, field_of_study, institution, location, start_date, end_date, gpa, description, sort_order
FROM education WHERE resume_id = $1 ORDER BY sort_order, id`
	rows, err := r.DB.QueryContext(ctx, query, resume.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var e Education
		if err := rows.Scan(&e.ID, &e.ResumeID, &e.Degree, &e.FieldOfStudy, &e.Institution,
			&e.Location, &e.StartDate, &e.EndDate, &e.GPA, &e.Description, &e.SortOrder); err != nil {
			return err
		}
		resume.Education = append(resume.Education, e)
	}
	return rows.Err()
}

func (r *PGRepo) loadSkills(ctx context.Context, resume *Resume) error {
	const query = `
SELECT id, resume_id, name, category, level, sort_order
FROM skills WHERE resume_id = $1 ORDER BY sort_order, id`
	rows, err := r.DB.QueryContext(ctx, query, resume.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.ResumeID, &s.Name, &s.Category, &s.Level, &s.SortOrder); err != nil {
			return err
		}
		resume.Skills = append(resume.Skills, s)
	}
	return rows.Err()
}

func (r *PGRepo) loadProjects(ctx context.Context, resume *Resume) error {
	const query = `
SELECT id, resume_id, name, description, url, technologies, start_date, end_date, sort_order
FROM projects WHERE resume_id = $1 ORDER BY sort_order, id`
	rows, err := r.DB.QueryContext(ctx, query, resume.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.ResumeID, &p.Name, &p.Description, &p.URL,
			&p.Technologies, &p.StartDate, &p.EndDate, &p.SortOrder); err != nil {
			return err
		}
		resume.Projects = append(resume.Projects, p)
	}
	return rows.Err()
}

func (r *PGRepo) loadCertifications(ctx context.Context, resume *Resume) error {
	const query = `
SELECT id, resume_id, name, issuer, issue_date, expiry_date, credential_id, credential_url, sort_order
FROM certifications WHERE resume_id = $1 ORDER BY sort_order, id`
	rows, err := r.DB.QueryContext(ctx, query, resume.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var c Certification
		if err := rows.Scan(&c.ID, &c.ResumeID, &c.Name, &c.Issuer, &c.IssueDate,
			&c.ExpiryDate, &c.CredentialID, &c.CredentialURL, &c.SortOrder); err != nil {
			return err
		}
		resume.Certifications = append(resume.Certifications, c)
	}
	return rows.Err()
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
