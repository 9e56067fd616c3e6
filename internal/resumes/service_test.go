package resumes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	return NewService(repo), repo
}

func seedResume(t *testing.T, svc *Service, userID string) Resume {
	t.Helper()
	resume, err := svc.Create(context.Background(), userID, CreateInput{
		Title:   "Backend Engineer",
		Email:   "jane@example.com",
		Summary: "Experienced engineer.",
	})
	require.NoError(t, err)
	return resume
}

func TestCreateAssignsSlugAndTemplate(t *testing.T) {
	svc, _ := newTestService()

	resume := seedResume(t, svc, "u1")
	assert.Equal(t, "modern", resume.Template)
	assert.Contains(t, resume.Slug, "backend-engineer-")
	assert.NotEmpty(t, resume.ID)
	assert.False(t, resume.IsPublic)
}

func TestCreateRejectsUnknownTemplate(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), "u1", CreateInput{Title: "X", Template: "fancy"})
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestGetEnforcesOwnership(t *testing.T) {
	svc, _ := newTestService()
	resume := seedResume(t, svc, "u1")

	_, err := svc.Get(context.Background(), "u2", resume.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.Get(context.Background(), "u1", resume.ID)
	require.NoError(t, err)
	assert.Equal(t, resume.ID, got.ID)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	svc, _ := newTestService()
	resume := seedResume(t, svc, "u1")

	phone := "+15551234567"
	got, err := svc.Update(context.Background(), "u1", resume.ID, UpdateInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, got.Phone)
	assert.Equal(t, "Backend Engineer", got.Title)
	assert.Equal(t, "jane@example.com", got.Email)
}

func TestDuplicateCopiesSectionsAndResetsSharing(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	resume := seedResume(t, svc, "u1")

	_, err := svc.AddExperience(ctx, "u1", resume.ID, Experience{JobTitle: "Engineer", Company: "Acme"})
	require.NoError(t, err)
	_, err = svc.AddSkill(ctx, "u1", resume.ID, Skill{Name: "Go"})
	require.NoError(t, err)
	_, err = svc.ToggleShare(ctx, "u1", resume.ID)
	require.NoError(t, err)

	dup, err := svc.Duplicate(ctx, "u1", resume.ID)
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer (Copy)", dup.Title)
	assert.NotEqual(t, resume.ID, dup.ID)
	assert.NotEqual(t, resume.Slug, dup.Slug)
	assert.False(t, dup.IsPublic)
	assert.Empty(t, dup.ShareToken)
	require.Len(t, dup.Experiences, 1)
	assert.Equal(t, "Engineer", dup.Experiences[0].JobTitle)
	require.Len(t, dup.Skills, 1)
	assert.NotEqual(t, resume.ID, dup.Experiences[0].ResumeID)
}

func TestToggleShareMintsTokenOnce(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	resume := seedResume(t, svc, "u1")

	shared, err := svc.ToggleShare(ctx, "u1", resume.ID)
	require.NoError(t, err)
	assert.True(t, shared.IsPublic)
	assert.Len(t, shared.ShareToken, 32)

	private, err := svc.ToggleShare(ctx, "u1", resume.ID)
	require.NoError(t, err)
	assert.False(t, private.IsPublic)
	assert.Equal(t, shared.ShareToken, private.ShareToken)

	again, err := svc.ToggleShare(ctx, "u1", resume.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.ShareToken, again.ShareToken)
}

func TestGetSharedCountsViewsAndHidesPrivate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	resume := seedResume(t, svc, "u1")

	shared, err := svc.ToggleShare(ctx, "u1", resume.ID)
	require.NoError(t, err)

	got, err := svc.GetShared(ctx, shared.ShareToken)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewCount)

	_, err = svc.ToggleShare(ctx, "u1", resume.ID)
	require.NoError(t, err)
	_, err = svc.GetShared(ctx, shared.ShareToken)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetSharedRejectsArchived(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	resume := seedResume(t, svc, "u1")

	shared, err := svc.ToggleShare(ctx, "u1", resume.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Archive(ctx, "u1", resume.ID))

	_, err = svc.GetShared(ctx, shared.ShareToken)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestArchiveHidesFromDefaultList(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	resume := seedResume(t, svc, "u1")
	seedResume(t, svc, "u1")

	require.NoError(t, svc.Archive(ctx, "u1", resume.ID))

	visible, err := svc.List(ctx, "u1", false)
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	all, err := svc.List(ctx, "u1", true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.Unarchive(ctx, "u1", resume.ID))
	visible, err = svc.List(ctx, "u1", false)
	require.NoError(t, err)
	assert.Len(t, visible, 2)
}

func TestSectionEntryLifecycle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	resume := seedResume(t, svc, "u1")

	entry, err := svc.AddExperience(ctx, "u1", resume.ID, Experience{JobTitle: "Engineer"})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)

	entry.Company = "Acme"
	updated, err := svc.UpdateExperience(ctx, "u1", resume.ID, entry)
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Company)

	require.NoError(t, svc.DeleteSectionEntry(ctx, "u1", resume.ID, SectionExperience, entry.ID))

	got, err := svc.Get(ctx, "u1", resume.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Experiences)

	err = svc.DeleteSectionEntry(ctx, "u1", resume.ID, SectionExperience, entry.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSectionOpsEnforceOwnership(t *testing.T) {
	svc, _ := newTestService()
	resume := seedResume(t, svc, "u1")

	_, err := svc.AddSkill(context.Background(), "intruder", resume.ID, Skill{Name: "Go"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAnalyzeATSPersistsScoreAndKeywords(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	resume := seedResume(t, svc, "u1")
	_, err := svc.AddSkill(ctx, "u1", resume.ID, Skill{Name: "python"})
	require.NoError(t, err)

	result, err := svc.AnalyzeATS(ctx, "u1", resume.ID, "python and docker role")
	require.NoError(t, err)
	assert.Greater(t, result.OverallScore, 0)

	got, err := svc.Get(ctx, "u1", resume.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ATSScore)
	assert.Equal(t, result.OverallScore, *got.ATSScore)
	assert.Equal(t, result.Keywords, got.ATSKeywords)
	assert.Contains(t, got.ATSKeywords, "python")
}

func TestCompleteness(t *testing.T) {
	r := Resume{FullName: "Jane", Email: "j@e.com", Summary: "s"}
	assert.Equal(t, 50, r.Completeness())

	r.Experiences = []Experience{{}}
	r.Education = []Education{{}}
	r.Skills = []Skill{{}}
	assert.Equal(t, 100, r.Completeness())

	assert.Equal(t, 0, Resume{}.Completeness())
}
