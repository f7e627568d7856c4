package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/ats-analyzer/internal/models"
)

type AnalysisRepository interface {
	Create(ctx context.Context, analysis *models.Analysis) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Analysis, error)
	FindByResume(ctx context.Context, resumeID uuid.UUID) ([]models.Analysis, error)
	// ListRecent returns the newest analyses first. limit <= 0 means 10.
	ListRecent(ctx context.Context, limit int) ([]models.Analysis, error)
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

// Create implements AnalysisRepository.
func (r *analysisRepository) Create(ctx context.Context, analysis *models.Analysis) error {
	if err := r.db.WithContext(ctx).Omit("Resume", "JobDescription").Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

// FindByID implements AnalysisRepository.
func (r *analysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Analysis, error) {
	var analysis models.Analysis
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("analysis %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	return &analysis, nil
}

// FindByResume implements AnalysisRepository.
func (r *analysisRepository) FindByResume(ctx context.Context, resumeID uuid.UUID) ([]models.Analysis, error) {
	analyses := []models.Analysis{}
	err := r.db.WithContext(ctx).
		Where("resume_id = ?", resumeID).
		Order("analyzed_at DESC").
		Find(&analyses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find analyses: %w", err)
	}
	return analyses, nil
}

// ListRecent implements AnalysisRepository.
func (r *analysisRepository) ListRecent(ctx context.Context, limit int) ([]models.Analysis, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	analyses := []models.Analysis{}
	err := r.db.WithContext(ctx).
		Order("analyzed_at DESC").
		Limit(limit).
		Find(&analyses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent analyses: %w", err)
	}
	return analyses, nil
}
