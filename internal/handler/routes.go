package handler

import (
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(
	app *fiber.App,
	authHandler *AuthHandler,
	passwordHandler *PasswordHandler,
	userHandler *UserHandler,
	healthHandler *HealthHandler,
	resolveUser fiber.Handler,
) {
	// Health check (public)
	app.Get("/health", healthHandler.Health)

	api := app.Group("/api")

	// Login and registration (public)
	api.Post("/register", authHandler.Register)
	api.Post("/authorize", authHandler.Authorize)
	api.Post("/2fa-verify", authHandler.TwoFactorVerify)
	api.Post("/logout", authHandler.Logout)

	// Email flows (public, token-gated)
	api.Post("/forgot-password", passwordHandler.ForgotPassword)
	api.Post("/reset", passwordHandler.Reset)
	api.Post("/verify", userHandler.Verify)

	// Cookie-resolved routes
	api.Get("/user", resolveUser, userHandler.Me)
	api.Post("/2fa-register", resolveUser, authHandler.TwoFactorRegister)
	api.Post("/change-password", resolveUser, passwordHandler.ChangePassword)
}
