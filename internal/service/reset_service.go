package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/denis-rim/node-auth/internal/domain"
	"github.com/denis-rim/node-auth/internal/repository"
)

// ResetService mints and validates stateless password-reset tokens. A token
// is a deterministic digest over {server secret, email, expiry}; nothing is
// persisted, so a valid link can be replayed until its embedded expiry
// passes. The expiry travels in the URL in Unix milliseconds.
type ResetService struct {
	users      repository.UserRepository
	secret     string
	rootDomain string
	tokenTTL   time.Duration
}

func NewResetService(users repository.UserRepository, secret, rootDomain string, tokenTTL time.Duration) *ResetService {
	return &ResetService{
		users:      users,
		secret:     secret,
		rootDomain: rootDomain,
		tokenTTL:   tokenTTL,
	}
}

// CreateLink builds a reset link for the email, or returns an empty string
// when no such user exists. The caller learns nothing beyond empty/non-empty.
func (s *ResetService) CreateLink(ctx context.Context, email string) (string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil
		}
		return "", err
	}

	expiry := time.Now().Add(s.tokenTTL).UnixMilli()
	token := s.createToken(email, expiry)

	return fmt.Sprintf("https://%s/reset/%s/%d/%s", s.rootDomain, url.PathEscape(email), expiry, token), nil
}

// Validate recomputes the digest for the claimed email and expiry and
// requires an exact match, plus the claimed expiry to sit inside the window
// (0, tokenTTL) from now. The expiry is attacker-supplied, so both bounds
// matter: a past timestamp is an expired link, a timestamp further out than
// the TTL could not have been minted by us.
func (s *ResetService) Validate(token, email string, expiry int64) bool {
	expected := s.createToken(email, expiry)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(token)) != 1 {
		return false
	}

	remaining := expiry - time.Now().UnixMilli()
	return remaining > 0 && remaining < s.tokenTTL.Milliseconds()
}

func (s *ResetService) createToken(email string, expiry int64) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%d", s.secret, email, expiry)))
	return hex.EncodeToString(sum[:])
}
