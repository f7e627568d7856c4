package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/ats-analyzer/internal/services"
)

// ErrorHandler renders every error as {"error", "code"}. Service sentinels
// decide the status; explicit fiber errors keep their own.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := statusFor(err)

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	message := err.Error()
	if code >= fiber.StatusInternalServerError {
		log.Printf("❌ %s %s: %v\n", c.Method(), c.Path(), err)
		message = publicMessage(err)
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
		"code":  code,
	})
}

// publicMessage is the client-facing text for a server-side failure.
func publicMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrIndexDisabled):
		return services.ErrIndexDisabled.Error()
	case errors.Is(err, services.ErrAnalysisFailed):
		return services.ErrAnalysisFailed.Error()
	default:
		return "internal server error"
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrUnsupportedFormat),
		errors.Is(err, services.ErrEmptyDocument):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrIndexDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// paramID parses a uuid route parameter.
func paramID(c *fiber.Ctx, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+label+" ID format")
	}
	return id, nil
}
