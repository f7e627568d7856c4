package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/ats-analyzer/internal/models"
)

type ResumeRepository interface {
	Create(ctx context.Context, resume *models.Resume) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Resume, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Resume, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Create implements ResumeRepository.
func (r *resumeRepository) Create(ctx context.Context, resume *models.Resume) error {
	if err := r.db.WithContext(ctx).Create(resume).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

// FindByID implements ResumeRepository.
func (r *resumeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resume %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}
	return &resume, nil
}

// FindByUser implements ResumeRepository.
func (r *resumeRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Resume, error) {
	resumes := []models.Resume{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&resumes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find resumes: %w", err)
	}
	return resumes, nil
}
