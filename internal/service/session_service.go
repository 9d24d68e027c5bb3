package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/denis-rim/node-auth/internal/domain"
	"github.com/denis-rim/node-auth/internal/repository"
)

const sessionTokenBytes = 43

// SessionService creates, looks up, and deletes session records. It is the
// single source of truth for revocation.
type SessionService struct {
	sessions repository.SessionRepository
}

func NewSessionService(sessions repository.SessionRepository) *SessionService {
	return &SessionService{sessions: sessions}
}

// Create generates a cryptographically random session token and inserts the
// record. The caller must not proceed to token issuance when Create fails.
func (s *SessionService) Create(ctx context.Context, userID uuid.UUID, conn domain.ConnectionInfo) (string, error) {
	sessionToken, err := generateSessionToken()
	if err != nil {
		return "", domain.ErrSessionCreation
	}

	now := time.Now()
	session := &domain.Session{
		SessionToken: sessionToken,
		UserID:       userID,
		Valid:        true,
		UserAgent:    conn.UserAgent,
		IPAddress:    conn.IP,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSessionCreation, err)
	}

	return sessionToken, nil
}

// Find looks up a session by its token.
func (s *SessionService) Find(ctx context.Context, sessionToken string) (*domain.Session, error) {
	return s.sessions.GetByToken(ctx, sessionToken)
}

// Touch records a refresh against the session by bumping updated_at.
func (s *SessionService) Touch(ctx context.Context, sessionToken string) error {
	return s.sessions.Touch(ctx, sessionToken, time.Now())
}

// Invalidate deletes the session record. A subsequent Find reports not-found.
func (s *SessionService) Invalidate(ctx context.Context, sessionToken string) error {
	return s.sessions.DeleteByToken(ctx, sessionToken)
}

func generateSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
