package domain

import "errors"

// Component-level failures. Handlers map these to status-only responses;
// no internal detail crosses the boundary.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionCreation    = errors.New("failed to create session")
	ErrTokenCreation      = errors.New("failed to create tokens")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)
