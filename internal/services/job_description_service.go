package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/repositories"
)

type JobDescriptionService interface {
	Create(ctx context.Context, req models.CreateJobDescriptionRequest) (*models.JobDescription, error)
	Get(ctx context.Context, id uuid.UUID) (*models.JobDescription, error)
	Similar(ctx context.Context, id uuid.UUID, limit int) ([]models.SimilarJobDescription, error)
}

type jobDescriptionService struct {
	jdRepo  repositories.JobDescriptionRepository
	index   JobIndex
	indexer Indexer
}

func NewJobDescriptionService(
	jdRepo repositories.JobDescriptionRepository,
	index JobIndex,
	indexer Indexer,
) JobDescriptionService {
	return &jobDescriptionService{
		jdRepo:  jdRepo,
		index:   index,
		indexer: indexer,
	}
}

// Create implements JobDescriptionService. Title and description are required.
func (s *jobDescriptionService) Create(ctx context.Context, req models.CreateJobDescriptionRequest) (*models.JobDescription, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	jd := &models.JobDescription{
		ID:          uuid.New(),
		Title:       title,
		Company:     strings.TrimSpace(req.Company),
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.jdRepo.Create(ctx, jd); err != nil {
		return nil, err
	}

	s.indexer.Enqueue(jd.ID)
	return jd, nil
}

// Get implements JobDescriptionService.
func (s *jobDescriptionService) Get(ctx context.Context, id uuid.UUID) (*models.JobDescription, error) {
	return s.jdRepo.FindByID(ctx, id)
}

// Similar implements JobDescriptionService.
func (s *jobDescriptionService) Similar(ctx context.Context, id uuid.UUID, limit int) ([]models.SimilarJobDescription, error) {
	if !s.index.Enabled() {
		return nil, ErrIndexDisabled
	}
	if limit <= 0 {
		limit = 5
	}

	jd, err := s.jdRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hits, err := s.index.FindSimilar(ctx, jd, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}
	jds, err := s.jdRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*models.JobDescription, len(jds))
	for i := range jds {
		byID[jds[i].ID] = &jds[i]
	}

	// Keep the index ranking and skip points whose record is gone
	out := []models.SimilarJobDescription{}
	for _, h := range hits {
		if found, ok := byID[h.ID]; ok {
			out = append(out, models.SimilarJobDescription{JobDescription: found, Score: h.Score})
		}
	}
	return out, nil
}
