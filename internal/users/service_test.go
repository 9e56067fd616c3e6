package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdi67436/cv-maker-web/internal/shared/auth"
)

func newTestService() (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	return NewService(repo, auth.NewHasher(10, "")), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Email:     "Jane@Example.com",
		Password:  "Str0ng!pass",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "user", user.Role)
	assert.True(t, user.IsActive)
	assert.NotEmpty(t, user.ID)

	got, err := svc.Login(ctx, "jane@example.com", "Str0ng!pass", "127.0.0.1", "go-test")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	actions := make([]string, 0)
	for _, a := range repo.Activities() {
		actions = append(actions, a.Action)
	}
	assert.Equal(t, []string{"register", "login"}, actions)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "short"})
	assert.ErrorIs(t, err, auth.ErrWeakPassword)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "Str0ng!pass"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "A@B.com", Password: "Str0ng!pass"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "Str0ng!pass"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@b.com", "Wr0ng!pass", "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "unknown@b.com", "Str0ng!pass", "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "Str0ng!pass"})
	require.NoError(t, err)

	user.IsActive = false
	require.NoError(t, repo.Update(ctx, user))

	_, err = svc.Login(ctx, "a@b.com", "Str0ng!pass", "", "")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "Str0ng!pass"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, "wrong", "N3w!password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, user.ID, "Str0ng!pass", "weak")
	assert.ErrorIs(t, err, auth.ErrWeakPassword)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "Str0ng!pass", "N3w!password"))

	_, err = svc.Login(ctx, "a@b.com", "N3w!password", "", "")
	assert.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "Str0ng!pass"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdate{FirstName: "New", LastName: "Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.FullName())
}
