package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-analyzer/internal/services"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

// ResultHandler serves stored analyses.
type ResultHandler struct {
	analyses services.AnalysisService
}

func NewResultHandler(analyses services.AnalysisService) *ResultHandler {
	return &ResultHandler{
		analyses: analyses,
	}
}

// HandleGetResult handles GET /analysis/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "analysis")
	if err != nil {
		return err
	}

	analysis, err := h.analyses.Get(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(analysis)
}

// HandleRecent handles GET /analyses/recent
func (h *ResultHandler) HandleRecent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultRecentLimit)
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	analyses, err := h.analyses.ListRecent(c.UserContext(), limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"analyses": analyses,
		"count":    len(analyses),
	})
}
