package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/repositories"
)

// rankedJobIndex returns fixed hits for every query.
type rankedJobIndex struct {
	fakeJobIndex
	hits []SimilarHit
}

func (r *rankedJobIndex) FindSimilar(context.Context, *models.JobDescription, int) ([]SimilarHit, error) {
	return r.hits, nil
}

func TestJobDescriptionServiceCreateValidates(t *testing.T) {
	repo := repositories.NewMemoryJobDescriptionRepository()
	index := NewNoopJobIndex()
	svc := NewJobDescriptionService(repo, index, NewIndexer(repo, index, fastRetry, 1))
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.CreateJobDescriptionRequest
	}{
		{"blank title", models.CreateJobDescriptionRequest{Title: " ", Description: "Go"}},
		{"blank description", models.CreateJobDescriptionRequest{Title: "Engineer", Description: "\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	jd, err := svc.Create(ctx, models.CreateJobDescriptionRequest{
		Title:       " Backend Engineer ",
		Company:     "Acme",
		Description: "Go, PostgreSQL, Kubernetes",
	})
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", jd.Title)

	stored, err := svc.Get(ctx, jd.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", stored.Company)
}

func TestJobDescriptionServiceSimilarDisabled(t *testing.T) {
	repo := repositories.NewMemoryJobDescriptionRepository()
	index := NewNoopJobIndex()
	svc := NewJobDescriptionService(repo, index, NewIndexer(repo, index, fastRetry, 1))

	_, err := svc.Similar(context.Background(), uuid.New(), 5)
	assert.ErrorIs(t, err, ErrIndexDisabled)
}

func TestJobDescriptionServiceSimilar(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryJobDescriptionRepository()

	var jds []*models.JobDescription
	for _, title := range []string{"Source", "Close match", "Loose match"} {
		jd := &models.JobDescription{ID: uuid.New(), Title: title, Description: title}
		require.NoError(t, repo.Create(ctx, jd))
		jds = append(jds, jd)
	}

	index := &rankedJobIndex{hits: []SimilarHit{
		{ID: jds[1].ID, Score: 0.93},
		{ID: uuid.New(), Score: 0.90},
		{ID: jds[2].ID, Score: 0.41},
	}}
	indexer := NewIndexer(repo, index, fastRetry, 1)
	svc := NewJobDescriptionService(repo, index, indexer)

	similar, err := svc.Similar(ctx, jds[0].ID, 3)
	require.NoError(t, err)
	require.Len(t, similar, 2)
	assert.Equal(t, "Close match", similar[0].JobDescription.Title)
	assert.InDelta(t, 0.93, similar[0].Score, 1e-6)
	assert.Equal(t, "Loose match", similar[1].JobDescription.Title)

	_, err = svc.Similar(ctx, uuid.New(), 3)
	assert.ErrorIs(t, err, ErrNotFound)
}
