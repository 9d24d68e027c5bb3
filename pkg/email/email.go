package email

import (
	"context"
)

// EmailService defines the interface for sending emails
type EmailService interface {
	// SendVerificationEmail sends an email verification link to the user
	SendVerificationEmail(ctx context.Context, to, link string) error

	// SendPasswordResetEmail sends a password reset link to the user
	SendPasswordResetEmail(ctx context.Context, to, link string) error
}

// EmailConfig holds email service configuration
type EmailConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}
