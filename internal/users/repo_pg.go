package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, password_hash, first_name, last_name, role, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Role,
		user.IsActive,
	)
	if err != nil && strings.Contains(err.Error(), "unique") {
		return ErrEmailTaken
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, email, password_hash, first_name, last_name, role, is_active, last_login_at, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `
SELECT id, email, password_hash, first_name, last_name, role, is_active, last_login_at, created_at, updated_at
FROM users
WHERE lower(email) = lower($1)
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) Update(ctx context.Context, user User) error {
	const query = `
UPDATE users
SET first_name = $2, last_name = $3, role = $4, is_active = $5, updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, user.ID, user.FirstName, user.LastName, user.Role, user.IsActive)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) SetPassword(ctx context.Context, userID, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, userID, passwordHash)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) SetLastLogin(ctx context.Context, userID string) error {
	const query = `UPDATE users SET last_login_at = now() WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, userID)
	return err
}

func (r *PGRepo) RecordActivity(ctx context.Context, activity Activity) error {
	const query = `
INSERT INTO user_activities (user_id, action, details, ip_address, user_agent, created_at)
VALUES ($1, $2, $3, $4, $5, now())`
	_, err := r.DB.ExecContext(ctx, query, activity.UserID, activity.Action, activity.Details, activity.IPAddress, activity.UserAgent)
	return err
}

func (r *PGRepo) scanOne(row *sql.Row) (User, error) {
	var user User
	var lastLogin sql.NullTime
	var updatedAt sql.NullTime
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.IsActive,
		&lastLogin,
		&user.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLoginAt = &t
	}
	if updatedAt.Valid {
		user.UpdatedAt = updatedAt.Time
	} else {
		user.UpdatedAt = time.Now().UTC()
	}
	return user, nil
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
