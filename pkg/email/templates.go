package email

import "fmt"

// VerificationEmailTemplate renders the email-verification message body
func VerificationEmailTemplate(link string) string {
	return fmt.Sprintf(`<h2>Verify your email</h2> <a href="%s">verify</a>`, link)
}

// PasswordResetEmailTemplate renders the password-reset message body
func PasswordResetEmailTemplate(link string) string {
	return fmt.Sprintf(`<h2>Reset your password</h2> <a href="%s">Reset</a>`, link)
}
