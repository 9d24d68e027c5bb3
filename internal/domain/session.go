package domain

import (
	"time"

	"github.com/google/uuid"
)

// ConnectionInfo captures the client connection metadata recorded on a session.
type ConnectionInfo struct {
	IP        string
	UserAgent string
}

// Session is the server-side revocation anchor for a pair of issued tokens.
// The session token is opaque and unique; multiple concurrent sessions per
// user are allowed.
type Session struct {
	SessionToken string    `json:"session_token"`
	UserID       uuid.UUID `json:"user_id"`
	Valid        bool      `json:"valid"`
	UserAgent    string    `json:"user_agent,omitempty"`
	IPAddress    string    `json:"ip_address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
