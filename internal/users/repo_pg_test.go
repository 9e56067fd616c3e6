package users

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &PGRepo{DB: db}, mock
}

func userColumns() []string {
	return []string{"id", "email", "password_hash", "first_name", "last_name", "role", "is_active", "last_login_at", "created_at", "updated_at"}
}

func sampleTime() time.Time {
	return time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func TestPGCreate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("u1", "a@b.com", "hash", "Jane", "Doe", "user", true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), User{
		ID: "u1", Email: "a@b.com", PasswordHash: "hash",
		FirstName: "Jane", LastName: "Doe", Role: "user", IsActive: true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGGetByEmailNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .* FROM users`).
		WithArgs("missing@b.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "missing@b.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPGGetByIDScansRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows(userColumns()).
		AddRow("u1", "a@b.com", "hash", "Jane", "Doe", "user", true, nil, sampleTime(), sampleTime())

	mock.ExpectQuery(`SELECT .* FROM users`).
		WithArgs("u1").
		WillReturnRows(rows)

	user, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Nil(t, user.LastLoginAt)
}

func TestPGUpdateMissingRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE users`).
		WithArgs("u1", "Jane", "Doe", "user", true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), User{ID: "u1", FirstName: "Jane", LastName: "Doe", Role: "user", IsActive: true})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPGRecordActivity(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`INSERT INTO user_activities`).
		WithArgs("u1", "login", "", "127.0.0.1", "curl/8.5").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.RecordActivity(context.Background(), Activity{UserID: "u1", Action: "login", IPAddress: "127.0.0.1", UserAgent: "curl/8.5"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
