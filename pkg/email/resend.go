package email

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// ResendEmailService implements EmailService using Resend
type ResendEmailService struct {
	client *resend.Client
	config *EmailConfig
}

// NewResendEmailService creates a new Resend email service
func NewResendEmailService(config *EmailConfig) (*ResendEmailService, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	if config.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}

	client := resend.NewClient(config.APIKey)

	return &ResendEmailService{
		client: client,
		config: config,
	}, nil
}

// SendVerificationEmail sends an email verification link to the user
func (s *ResendEmailService) SendVerificationEmail(ctx context.Context, to, link string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		To:      []string{to},
		Subject: "Verify email",
		Html:    VerificationEmailTemplate(link),
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		log.Printf("Failed to send verification email to %s: %v", to, err)
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	log.Printf("Verification email sent to %s (ID: %s)", to, sent.Id)
	return nil
}

// SendPasswordResetEmail sends a password reset link to the user
func (s *ResendEmailService) SendPasswordResetEmail(ctx context.Context, to, link string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		To:      []string{to},
		Subject: "Reset your password",
		Html:    PasswordResetEmailTemplate(link),
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		log.Printf("Failed to send password reset email to %s: %v", to, err)
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	log.Printf("Password reset email sent to %s (ID: %s)", to, sent.Id)
	return nil
}
