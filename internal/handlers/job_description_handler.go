package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/services"
)

const (
	defaultSimilarLimit = 5
	maxSimilarLimit     = 20
)

type JobDescriptionHandler struct {
	jobDescriptions services.JobDescriptionService
}

func NewJobDescriptionHandler(jobDescriptions services.JobDescriptionService) *JobDescriptionHandler {
	return &JobDescriptionHandler{
		jobDescriptions: jobDescriptions,
	}
}

// HandleCreate handles POST /job-description
func (h *JobDescriptionHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateJobDescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}

	jd, err := h.jobDescriptions.Create(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(jd)
}

// HandleGet handles GET /job-description/:id
func (h *JobDescriptionHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "job description")
	if err != nil {
		return err
	}

	jd, err := h.jobDescriptions.Get(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(jd)
}

// HandleSimilar handles GET /job-description/:id/similar
func (h *JobDescriptionHandler) HandleSimilar(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "job description")
	if err != nil {
		return err
	}

	limit := c.QueryInt("limit", defaultSimilarLimit)
	if limit <= 0 {
		limit = defaultSimilarLimit
	}
	if limit > maxSimilarLimit {
		limit = maxSimilarLimit
	}

	similar, err := h.jobDescriptions.Similar(c.UserContext(), id, limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"similar": similar,
		"count":   len(similar),
	})
}
