package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/services"
)

type UserHandler struct {
	users services.UserService
}

func NewUserHandler(users services.UserService) *UserHandler {
	return &UserHandler{
		users: users,
	}
}

// HandleCreate handles POST /users
func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}

	user, err := h.users.Create(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleGet handles GET /users/:id
func (h *UserHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "user")
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(user)
}

// HandleListResumes handles GET /users/:id/resumes
func (h *UserHandler) HandleListResumes(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "user")
	if err != nil {
		return err
	}

	resumes, err := h.users.ListResumes(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"resumes": resumes,
		"count":   len(resumes),
	})
}
