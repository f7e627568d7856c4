package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-analyzer/internal/services"
)

type SystemHandler struct{}

func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// HandleHealth handles GET /health
func (h *SystemHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now(),
	})
}

// HandleMetrics handles GET /metrics
func (h *SystemHandler) HandleMetrics(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(services.FormatMetrics())
}
