package repositories

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-analyzer/internal/models"
)

func newAnalysis(resumeID uuid.UUID, at time.Time) *models.Analysis {
	a := models.NewAnalysis(resumeID, uuid.New(), &models.AnalysisResult{})
	a.AnalyzedAt = at
	return a
}

func TestMemoryNotFound(t *testing.T) {
	ctx := context.Background()
	repos := NewMemoryRepositories()
	id := uuid.New()

	_, err := repos.Users.FindByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repos.Users.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repos.Resumes.FindByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repos.JobDescriptions.FindByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repos.Analyses.FindByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserUniqueUsername(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	require.NoError(t, repo.Create(ctx, &models.User{ID: uuid.New(), Username: "ada"}))
	err := repo.Create(ctx, &models.User{ID: uuid.New(), Username: "ada"})
	assert.ErrorIs(t, err, ErrDuplicate)

	got, err := repo.FindByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, "ada", got.Username)
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobDescriptionRepository()
	jd := &models.JobDescription{ID: uuid.New(), Title: "Backend", Description: "Go"}
	require.NoError(t, repo.Create(ctx, jd))

	jd.Title = "changed"
	got, err := repo.FindByID(ctx, jd.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend", got.Title)

	got.Title = "changed again"
	again, err := repo.FindByID(ctx, jd.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend", again.Title)
}

func TestMemoryAnalysisSlicesAreCopied(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAnalysisRepository()
	a := models.NewAnalysis(uuid.New(), uuid.New(), &models.AnalysisResult{
		FoundKeywords:   []string{"Docker"},
		MissingKeywords: []string{"Kubernetes"},
		Recommendations: []models.Recommendation{{Title: "Add Kubernetes", Priority: models.PriorityHigh}},
		SkillsGap:       []models.SkillGap{{Category: models.CategoryTechnical, Missing: []string{"Kubernetes"}}},
	})
	require.NoError(t, repo.Create(ctx, a))

	a.FoundKeywords[0] = "MUTATED"
	a.SkillsGap[0].Missing[0] = "MUTATED"

	got, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Docker"}, []string(got.FoundKeywords))
	assert.Equal(t, []string{"Kubernetes"}, got.SkillsGap[0].Missing)

	got.MissingKeywords[0] = "MUTATED"
	got.Recommendations[0].Title = "MUTATED"
	listed, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, []string{"Kubernetes"}, []string(listed[0].MissingKeywords))
	assert.Equal(t, "Add Kubernetes", listed[0].Recommendations[0].Title)
}

func TestMemoryResumeUserIDIsCopied(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryResumeRepository()
	owner := uuid.New()
	resume := &models.Resume{ID: uuid.New(), UserID: &owner, Filename: "cv.pdf", OriginalText: "Go"}
	require.NoError(t, repo.Create(ctx, resume))

	want := owner
	*resume.UserID = uuid.New()

	got, err := repo.FindByID(ctx, resume.ID)
	require.NoError(t, err)
	require.NotNil(t, got.UserID)
	assert.Equal(t, want, *got.UserID)
}

func TestMemoryResumesByUser(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryResumeRepository()
	owner := uuid.New()

	require.NoError(t, repo.Create(ctx, &models.Resume{ID: uuid.New(), UserID: &owner, Filename: "a.pdf"}))
	require.NoError(t, repo.Create(ctx, &models.Resume{ID: uuid.New(), Filename: "anon.pdf"}))
	require.NoError(t, repo.Create(ctx, &models.Resume{ID: uuid.New(), UserID: &owner, Filename: "b.pdf"}))

	resumes, err := repo.FindByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, resumes, 2)
	assert.Equal(t, "b.pdf", resumes[0].Filename)
	assert.Equal(t, "a.pdf", resumes[1].Filename)
}

func TestMemoryListRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAnalysisRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []uuid.UUID
	for i := 0; i < 15; i++ {
		a := newAnalysis(uuid.New(), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(ctx, a))
		ids = append(ids, a.ID)
	}

	t.Run("default limit", func(t *testing.T) {
		got, err := repo.ListRecent(ctx, 0)
		require.NoError(t, err)
		require.Len(t, got, 10)
		assert.Equal(t, ids[14], got[0].ID)
		assert.Equal(t, ids[5], got[9].ID)
	})

	t.Run("explicit limit", func(t *testing.T) {
		got, err := repo.ListRecent(ctx, 3)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.True(t, got[0].AnalyzedAt.After(got[1].AnalyzedAt))
		assert.True(t, got[1].AnalyzedAt.After(got[2].AnalyzedAt))
	})

	t.Run("limit above size", func(t *testing.T) {
		got, err := repo.ListRecent(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, got, 15)
	})
}

func TestMemoryListRecentOutOfOrderInserts(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAnalysisRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	late := newAnalysis(uuid.New(), base.Add(time.Hour))
	early := newAnalysis(uuid.New(), base)
	require.NoError(t, repo.Create(ctx, late))
	require.NoError(t, repo.Create(ctx, early))

	got, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, late.ID, got[0].ID)
	assert.Equal(t, early.ID, got[1].ID)
}

func TestMemoryAnalysesByResume(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAnalysisRepository()
	resumeID := uuid.New()
	base := time.Now()

	require.NoError(t, repo.Create(ctx, newAnalysis(resumeID, base)))
	require.NoError(t, repo.Create(ctx, newAnalysis(uuid.New(), base)))
	require.NoError(t, repo.Create(ctx, newAnalysis(resumeID, base.Add(time.Second))))

	got, err := repo.FindByResume(ctx, resumeID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].AnalyzedAt.After(got[1].AnalyzedAt))
}

func TestMemoryConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAnalysisRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Create(ctx, newAnalysis(uuid.New(), time.Now())))
		}()
	}
	wg.Wait()

	got, err := repo.ListRecent(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, got, 50)

	seen := map[uuid.UUID]bool{}
	for _, a := range got {
		assert.False(t, seen[a.ID], fmt.Sprintf("duplicate id %s", a.ID))
		seen[a.ID] = true
	}
}
