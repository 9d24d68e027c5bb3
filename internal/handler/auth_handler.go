package handler

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/denis-rim/node-auth/internal/config"
	"github.com/denis-rim/node-auth/internal/handler/middleware"
	"github.com/denis-rim/node-auth/internal/service"
	"github.com/denis-rim/node-auth/pkg/email"
	"github.com/denis-rim/node-auth/pkg/validator"
)

const (
	statusSuccess   = "SUCCESS"
	statusFailed    = "FAILED"
	statusTwoFactor = "2FA"
)

type AuthHandler struct {
	authService   *service.AuthService
	verifyService *service.VerifyService
	emailService  email.EmailService
	validator     *validator.Validator
	cookieDomain  string
	refreshTTL    time.Duration
}

func NewAuthHandler(
	authService *service.AuthService,
	verifyService *service.VerifyService,
	emailService email.EmailService,
	validator *validator.Validator,
	cfg config.AuthConfig,
) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		verifyService: verifyService,
		emailService:  emailService,
		validator:     validator,
		cookieDomain:  cfg.RootDomain,
		refreshTTL:    cfg.RefreshCookieTTL,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register creates the account, sends the verification email, and logs the
// new user in within the same request.
// POST /api/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(statusResponse(statusFailed))
	}
	if err := h.validator.Validate(req); err != nil {
		return c.JSON(statusResponse(statusFailed))
	}

	user, err := h.authService.Register(c.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("[HANDLER] Registration failed: %v", err)
		return c.JSON(statusResponse(statusFailed))
	}

	if h.emailService != nil {
		link := h.verifyService.CreateLink(user.Email)
		if err := h.emailService.SendVerificationEmail(c.Context(), user.Email, link); err != nil {
			log.Printf("[HANDLER] Failed to send verification email: %v", err)
		}
	}

	pair, err := h.authService.Login(c.Context(), user.ID, connectionInfo(c))
	if err != nil {
		log.Printf("[HANDLER] Post-registration login failed: %v", err)
		return c.JSON(statusResponse(statusFailed))
	}

	setAuthCookies(c, pair, h.cookieDomain, h.refreshTTL)

	return c.JSON(fiber.Map{"data": fiber.Map{
		"status": statusSuccess,
		"userId": user.ID,
	}})
}

type authorizeRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Authorize verifies credentials and either establishes a session or asks
// for the second factor when one is enrolled.
// POST /api/authorize
func (h *AuthHandler) Authorize(c *fiber.Ctx) error {
	var req authorizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	if err := h.validator.Validate(req); err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	result, err := h.authService.Authorize(c.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("[HANDLER] Authorize failed: %v", err)
		return c.JSON(statusResponse(statusFailed))
	}
	if !result.Authorized {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	// Enrolled second factor: report it without establishing a session.
	if result.AuthenticatorSecret != nil && *result.AuthenticatorSecret != "" {
		return c.JSON(statusResponse(statusTwoFactor))
	}

	pair, err := h.authService.Login(c.Context(), result.UserID, connectionInfo(c))
	if err != nil {
		log.Printf("[HANDLER] Login failed: %v", err)
		return c.JSON(statusResponse(statusFailed))
	}

	setAuthCookies(c, pair, h.cookieDomain, h.refreshTTL)

	return c.JSON(fiber.Map{"data": fiber.Map{
		"status": statusSuccess,
		"userId": result.UserID,
	}})
}

type twoFactorRegisterRequest struct {
	Token  string `json:"token" validate:"required"`
	Secret string `json:"secret" validate:"required"`
}

// TwoFactorRegister enrolls an authenticator secret for the current user.
// The submitted code must verify against the candidate secret before it is
// persisted.
// POST /api/2fa-register (authenticated via cookies)
func (h *AuthHandler) TwoFactorRegister(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var req twoFactorRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	if err := h.validator.Validate(req); err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	if err := h.authService.EnrollTwoFactor(c.Context(), user.ID, req.Secret, req.Token); err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	return c.JSON(statusResponse(statusSuccess))
}

type twoFactorVerifyRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Token    string `json:"token" validate:"required"`
}

// TwoFactorVerify completes a 2FA-gated login: full credential
// re-authentication plus a one-time code check, then session establishment.
// POST /api/2fa-verify
func (h *AuthHandler) TwoFactorVerify(c *fiber.Ctx) error {
	var req twoFactorVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	if err := h.validator.Validate(req); err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	userID, err := h.authService.VerifyTwoFactorLogin(c.Context(), req.Email, req.Password, req.Token)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	pair, err := h.authService.Login(c.Context(), userID, connectionInfo(c))
	if err != nil {
		log.Printf("[HANDLER] Login failed: %v", err)
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	setAuthCookies(c, pair, h.cookieDomain, h.refreshTTL)

	return c.JSON(fiber.Map{"data": fiber.Map{
		"status": statusSuccess,
		"userId": userID,
	}})
}

// Logout deletes the session referenced by the refresh cookie and clears
// both cookies.
// POST /api/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.Context(), c.Cookies(RefreshTokenCookie)); err != nil {
		log.Printf("[HANDLER] Logout failed: %v", err)
	}

	clearAuthCookies(c, h.cookieDomain)

	return c.JSON(statusResponse(statusSuccess))
}
