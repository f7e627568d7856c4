package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/repositories"
)

type analysisFixture struct {
	repos     *repositories.Repositories
	publisher *fakePublisher
	oracle    *fakeOracle
	service   AnalysisService
	resume    *models.Resume
	jd        *models.JobDescription
}

func newAnalysisFixture(t *testing.T) *analysisFixture {
	t.Helper()
	ctx := context.Background()

	f := &analysisFixture{
		repos:     repositories.NewMemoryRepositories(),
		publisher: &fakePublisher{},
		oracle:    newEngineOracle(),
		resume: &models.Resume{
			ID:           uuid.New(),
			Filename:     "resume.pdf",
			OriginalText: engineResume,
			FileSize:     1024,
			MimeType:     MimePDF,
			UploadedAt:   time.Now().UTC(),
		},
		jd: &models.JobDescription{
			ID:          uuid.New(),
			Title:       "Platform Engineer",
			Description: engineJob,
			CreatedAt:   time.Now().UTC(),
		},
	}
	require.NoError(t, f.repos.Resumes.Create(ctx, f.resume))
	require.NoError(t, f.repos.JobDescriptions.Create(ctx, f.jd))

	f.service = NewAnalysisService(
		f.repos.Resumes,
		f.repos.JobDescriptions,
		f.repos.Analyses,
		NewAnalysisEngine(f.oracle, time.Second),
		f.publisher,
	)
	return f
}

func TestAnalysisServiceAnalyze(t *testing.T) {
	f := newAnalysisFixture(t)
	ctx := context.Background()

	analysis, result, err := f.service.Analyze(ctx, f.resume.ID, f.jd.ID)
	require.NoError(t, err)

	assert.Equal(t, f.resume.ID, analysis.ResumeID)
	assert.Equal(t, f.jd.ID, analysis.JobDescriptionID)
	assert.Equal(t, result.OverallScore, analysis.OverallScore)
	assert.Equal(t, []string(analysis.MissingKeywords), result.MissingKeywords)

	stored, err := f.service.Get(ctx, analysis.ID)
	require.NoError(t, err)
	assert.Equal(t, analysis.ID, stored.ID)

	byResume, err := f.service.ListByResume(ctx, f.resume.ID)
	require.NoError(t, err)
	assert.Len(t, byResume, 1)

	require.Len(t, f.publisher.published, 1)
	assert.Equal(t, analysis.ID, f.publisher.published[0].ID)
}

func TestAnalysisServiceUnknownEntities(t *testing.T) {
	f := newAnalysisFixture(t)
	ctx := context.Background()

	_, _, err := f.service.Analyze(ctx, uuid.New(), f.jd.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = f.service.Analyze(ctx, f.resume.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	recent, err := f.service.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
	assert.Equal(t, 0, f.oracle.calls())
}

func TestAnalysisServiceFailureStoresNothing(t *testing.T) {
	f := newAnalysisFixture(t)
	f.oracle.panicCheck = true

	_, _, err := f.service.Analyze(context.Background(), f.resume.ID, f.jd.ID)
	assert.ErrorIs(t, err, ErrAnalysisFailed)

	recent, err := f.service.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
	assert.Empty(t, f.publisher.published)
}

func TestAnalysisServicePublishFailureIsNotFatal(t *testing.T) {
	f := newAnalysisFixture(t)
	f.publisher.err = errors.New("broker down")

	analysis, _, err := f.service.Analyze(context.Background(), f.resume.ID, f.jd.ID)
	require.NoError(t, err)

	stored, err := f.service.Get(context.Background(), analysis.ID)
	require.NoError(t, err)
	assert.Equal(t, analysis.OverallScore, stored.OverallScore)
}

func TestAnalysisServiceListRecentOrder(t *testing.T) {
	f := newAnalysisFixture(t)
	ctx := context.Background()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		a, _, err := f.service.Analyze(ctx, f.resume.ID, f.jd.ID)
		require.NoError(t, err)
		ids = append(ids, a.ID)
		time.Sleep(2 * time.Millisecond)
	}

	recent, err := f.service.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, ids[2], recent[0].ID)
	assert.Equal(t, ids[1], recent[1].ID)
}

func TestAnalysisServiceListByUnknownResume(t *testing.T) {
	f := newAnalysisFixture(t)

	_, err := f.service.ListByResume(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAnalysisCompletedEventPayload(t *testing.T) {
	a := models.NewAnalysis(uuid.New(), uuid.New(), &models.AnalysisResult{OverallScore: 72})

	event := newAnalysisCompletedEvent(a)
	assert.Equal(t, a.ID.String(), event.AnalysisID)
	assert.Equal(t, a.ResumeID.String(), event.ResumeID)
	assert.Equal(t, a.JobDescriptionID.String(), event.JobDescriptionID)
	assert.Equal(t, 72, event.OverallScore)
	assert.NotNil(t, event.MissingKeywords)
	assert.Equal(t, a.AnalyzedAt, event.AnalyzedAt)
}
