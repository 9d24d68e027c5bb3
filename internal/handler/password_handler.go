package handler

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/denis-rim/node-auth/internal/handler/middleware"
	"github.com/denis-rim/node-auth/internal/repository"
	"github.com/denis-rim/node-auth/internal/service"
	"github.com/denis-rim/node-auth/pkg/email"
	"github.com/denis-rim/node-auth/pkg/validator"
)

type PasswordHandler struct {
	authService  *service.AuthService
	resetService *service.ResetService
	users        repository.UserRepository
	emailService email.EmailService
	validator    *validator.Validator
}

func NewPasswordHandler(
	authService *service.AuthService,
	resetService *service.ResetService,
	users repository.UserRepository,
	emailService email.EmailService,
	validator *validator.Validator,
) *PasswordHandler {
	return &PasswordHandler{
		authService:  authService,
		resetService: resetService,
		users:        users,
		emailService: emailService,
		validator:    validator,
	}
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPassword sends a reset link when a matching user exists. The
// response is 200 either way; nothing reveals whether the address is known.
// POST /api/forgot-password
func (h *PasswordHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(statusResponse(statusSuccess))
	}
	if err := h.validator.Validate(req); err != nil {
		return c.JSON(statusResponse(statusSuccess))
	}

	link, err := h.resetService.CreateLink(c.Context(), req.Email)
	if err != nil {
		log.Printf("[HANDLER] Failed to create reset link: %v", err)
		return c.JSON(statusResponse(statusSuccess))
	}

	if link != "" && h.emailService != nil {
		if err := h.emailService.SendPasswordResetEmail(c.Context(), req.Email, link); err != nil {
			log.Printf("[HANDLER] Failed to send reset email: %v", err)
		}
	}

	return c.JSON(statusResponse(statusSuccess))
}

type resetRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Token    string `json:"token" validate:"required"`
	Time     int64  `json:"time" validate:"required"`
}

// Reset validates the reset token from the emailed link and updates the
// password.
// POST /api/reset
func (h *PasswordHandler) Reset(c *fiber.Ctx) error {
	var req resetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	if err := h.validator.Validate(req); err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	if !h.resetService.Validate(req.Token, req.Email, req.Time) {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	user, err := h.users.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	if err := h.authService.SetPassword(c.Context(), user.ID, req.Password); err != nil {
		log.Printf("[HANDLER] Failed to set password: %v", err)
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	return c.JSON(statusResponse(statusSuccess))
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// ChangePassword re-authenticates the current user with the old password
// before updating it. Existing sessions stay valid.
// POST /api/change-password (authenticated via cookies)
func (h *PasswordHandler) ChangePassword(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	if err := h.validator.Validate(req); err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	result, err := h.authService.Authorize(c.Context(), user.Email, req.OldPassword)
	if err != nil || !result.Authorized {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	if err := h.authService.SetPassword(c.Context(), result.UserID, req.NewPassword); err != nil {
		log.Printf("[HANDLER] Failed to set password: %v", err)
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	return c.JSON(statusResponse(statusSuccess))
}
