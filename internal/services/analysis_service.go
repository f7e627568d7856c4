package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/repositories"
)

type AnalysisService interface {
	// Analyze runs the engine for a stored resume and job description and
	// stores the result. Nothing is stored when either id is unknown or the
	// engine fails.
	Analyze(ctx context.Context, resumeID, jobDescriptionID uuid.UUID) (*models.Analysis, *models.AnalysisResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Analysis, error)
	ListRecent(ctx context.Context, limit int) ([]models.Analysis, error)
	ListByResume(ctx context.Context, resumeID uuid.UUID) ([]models.Analysis, error)
}

type analysisService struct {
	resumeRepo   repositories.ResumeRepository
	jdRepo       repositories.JobDescriptionRepository
	analysisRepo repositories.AnalysisRepository
	engine       AnalysisEngine
	publisher    EventPublisher
}

func NewAnalysisService(
	resumeRepo repositories.ResumeRepository,
	jdRepo repositories.JobDescriptionRepository,
	analysisRepo repositories.AnalysisRepository,
	engine AnalysisEngine,
	publisher EventPublisher,
) AnalysisService {
	return &analysisService{
		resumeRepo:   resumeRepo,
		jdRepo:       jdRepo,
		analysisRepo: analysisRepo,
		engine:       engine,
		publisher:    publisher,
	}
}

// Analyze implements AnalysisService.
func (s *analysisService) Analyze(ctx context.Context, resumeID, jobDescriptionID uuid.UUID) (*models.Analysis, *models.AnalysisResult, error) {
	resume, err := s.resumeRepo.FindByID(ctx, resumeID)
	if err != nil {
		return nil, nil, err
	}

	jd, err := s.jdRepo.FindByID(ctx, jobDescriptionID)
	if err != nil {
		return nil, nil, err
	}

	log.Printf("🔄 Analyzing resume %s against job description %s\n", resume.ID, jd.ID)

	result, err := s.engine.Analyze(ctx, resume.OriginalText, jd.Description)
	if err != nil {
		return nil, nil, err
	}

	analysis := models.NewAnalysis(resume.ID, jd.ID, result)
	if err := s.analysisRepo.Create(ctx, analysis); err != nil {
		return nil, nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	metrics.Analyses.Add(1)

	if err := s.publisher.PublishAnalysisCompleted(analysis); err != nil {
		log.Printf("⚠️  Failed to publish analysis event: %v\n", err)
	}

	log.Printf("✅ Analysis %s completed with overall score %d\n", analysis.ID, analysis.OverallScore)
	return analysis, result, nil
}

// Get implements AnalysisService.
func (s *analysisService) Get(ctx context.Context, id uuid.UUID) (*models.Analysis, error) {
	return s.analysisRepo.FindByID(ctx, id)
}

// ListRecent implements AnalysisService.
func (s *analysisService) ListRecent(ctx context.Context, limit int) ([]models.Analysis, error) {
	return s.analysisRepo.ListRecent(ctx, limit)
}

// ListByResume implements AnalysisService.
func (s *analysisService) ListByResume(ctx context.Context, resumeID uuid.UUID) ([]models.Analysis, error) {
	if _, err := s.resumeRepo.FindByID(ctx, resumeID); err != nil {
		return nil, err
	}
	return s.analysisRepo.FindByResume(ctx, resumeID)
}
