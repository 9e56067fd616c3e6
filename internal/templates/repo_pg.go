package templates

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

const templateColumns = `id, name, display_name, description, is_premium, is_active, usage_count, created_at`

func (r *PGRepo) List(ctx context.Context, activeOnly bool) ([]Template, error) {
	query := `SELECT ` + templateColumns + ` FROM resume_templates`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		var t Template
		if err := rows.Scan(&t.ID, &t.Name, &t.DisplayName, &t.Description,
			&t.IsPremium, &t.IsActive, &t.UsageCount, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Template, error) {
	query := `SELECT ` + templateColumns + ` FROM resume_templates WHERE id = $1 LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGRepo) GetByName(ctx context.Context, name string) (Template, error) {
	query := `SELECT ` + templateColumns + ` FROM resume_templates WHERE name = $1 LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, name))
}

func (r *PGRepo) Create(ctx context.Context, t Template) error {
	const query = `
INSERT INTO resume_templates (id, name, display_name, description, is_premium, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())`
	_, err := r.DB.ExecContext(ctx, query, t.ID, t.Name, t.DisplayName, t.Description, t.IsPremium, t.IsActive)
	return err
}

func (r *PGRepo) Update(ctx context.Context, t Template) error {
	const query = `
UPDATE resume_templates
SET display_name = $2, description = $3, is_premium = $4, is_active = $5
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, t.ID, t.DisplayName, t.Description, t.IsPremium, t.IsActive)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) IncrementUsage(ctx context.Context, name string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE resume_templates SET usage_count = usage_count + 1 WHERE name = $1`, name)
	return err
}

func (r *PGRepo) scanOne(row *sql.Row) (Template, error) {
	var t Template
	err := row.Scan(&t.ID, &t.Name, &t.DisplayName, &t.Description,
		&t.IsPremium, &t.IsActive, &t.UsageCount, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Template{}, ErrNotFound
	}
	if err != nil {
		return Template{}, err
	}
	return t, nil
}
