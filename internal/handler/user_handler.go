package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/denis-rim/node-auth/internal/handler/middleware"
	"github.com/denis-rim/node-auth/internal/service"
	"github.com/denis-rim/node-auth/pkg/validator"
)

type UserHandler struct {
	verifyService *service.VerifyService
	validator     *validator.Validator
}

func NewUserHandler(verifyService *service.VerifyService, validator *validator.Validator) *UserHandler {
	return &UserHandler{
		verifyService: verifyService,
		validator:     validator,
	}
}

// Me returns the current user, or an empty object when resolution failed.
// GET /api/user
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.JSON(fiber.Map{})
	}

	return c.JSON(fiber.Map{"data": user})
}

type verifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
}

// Verify marks the user's email as verified when the token matches.
// POST /api/verify
func (h *UserHandler) Verify(c *fiber.Ctx) error {
	var req verifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	if err := h.validator.Validate(req); err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	valid, err := h.verifyService.Validate(c.Context(), req.Token, req.Email)
	if err != nil || !valid {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	return c.JSON(statusResponse(statusSuccess))
}
