package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/ats-analyzer/internal/models"
)

type JobDescriptionRepository interface {
	Create(ctx context.Context, jd *models.JobDescription) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.JobDescription, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.JobDescription, error)
}

type jobDescriptionRepository struct {
	db *gorm.DB
}

func NewJobDescriptionRepository(db *gorm.DB) JobDescriptionRepository {
	return &jobDescriptionRepository{db: db}
}

// Create implements JobDescriptionRepository.
func (r *jobDescriptionRepository) Create(ctx context.Context, jd *models.JobDescription) error {
	if err := r.db.WithContext(ctx).Create(jd).Error; err != nil {
		return fmt.Errorf("failed to create job description: %w", err)
	}
	return nil
}

// FindByID implements JobDescriptionRepository.
func (r *jobDescriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.JobDescription, error) {
	var jd models.JobDescription
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&jd).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job description %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find job description: %w", err)
	}
	return &jd, nil
}

// FindByIDs implements JobDescriptionRepository. Unknown ids are skipped.
func (r *jobDescriptionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.JobDescription, error) {
	jds := []models.JobDescription{}
	if len(ids) == 0 {
		return jds, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&jds).Error; err != nil {
		return nil, fmt.Errorf("failed to find job descriptions: %w", err)
	}
	return jds, nil
}
