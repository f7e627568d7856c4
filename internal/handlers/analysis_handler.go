package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/services"
)

type AnalysisHandler struct {
	analyses services.AnalysisService
}

func NewAnalysisHandler(analyses services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analyses: analyses,
	}
}

// HandleAnalyze handles POST /analyze
func (h *AnalysisHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest

	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}

	if strings.TrimSpace(req.ResumeID) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "resume_id is required")
	}

	if strings.TrimSpace(req.JobDescriptionID) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "job_description_id is required")
	}

	resumeID, err := uuid.Parse(req.ResumeID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid resume_id format")
	}

	jdID, err := uuid.Parse(req.JobDescriptionID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid job_description_id format")
	}

	analysis, result, err := h.analyses.Analyze(c.UserContext(), resumeID, jdID)
	if err != nil {
		return err
	}

	return c.JSON(models.AnalyzeResponse{
		Analysis: analysis,
		Result:   *result,
	})
}
