package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	Email               string    `json:"email" db:"email"`
	EmailVerified       bool      `json:"email_verified" db:"email_verified"`
	PasswordHash        string    `json:"-" db:"password_hash"`
	AuthenticatorSecret *string   `json:"-" db:"authenticator_secret"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// TwoFactorEnabled reports whether the user has an enrolled authenticator secret.
func (u *User) TwoFactorEnabled() bool {
	return u.AuthenticatorSecret != nil && *u.AuthenticatorSecret != ""
}
