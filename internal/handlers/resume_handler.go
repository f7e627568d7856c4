package handlers

import (
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/repositories"
	"alfredoptarigan/ats-analyzer/internal/services"
)

type ResumeHandler struct {
	resumes    services.ResumeService
	resumeRepo repositories.ResumeRepository
	analyses   services.AnalysisService
}

func NewResumeHandler(
	resumes services.ResumeService,
	resumeRepo repositories.ResumeRepository,
	analyses services.AnalysisService,
) *ResumeHandler {
	return &ResumeHandler{
		resumes:    resumes,
		resumeRepo: resumeRepo,
		analyses:   analyses,
	}
}

// HandleUpload handles POST /resume/upload
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No file uploaded. Please upload a PDF or DOCX file as 'resume'.")
	}

	var userID *uuid.UUID
	if raw := c.FormValue("user_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid user_id format")
		}
		userID = &parsed
	}

	resume, err := h.resumes.Ingest(c.UserContext(), file, userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		ID:        resume.ID.String(),
		Filename:  resume.Filename,
		FileSize:  resume.FileSize,
		TextChars: utf8.RuneCountInString(resume.OriginalText),
		Archived:  resume.ObjectKey != "",
	})
}

// HandleGet handles GET /resume/:id
func (h *ResumeHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "resume")
	if err != nil {
		return err
	}

	resume, err := h.resumeRepo.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(resume)
}

// HandleListAnalyses handles GET /resume/:id/analyses
func (h *ResumeHandler) HandleListAnalyses(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "resume")
	if err != nil {
		return err
	}

	analyses, err := h.analyses.ListByResume(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"analyses": analyses,
		"count":    len(analyses),
	})
}
