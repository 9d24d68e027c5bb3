package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/url"

	"github.com/denis-rim/node-auth/internal/repository"
)

// VerifyService mints and validates stateless email-verification tokens. The
// token is a deterministic digest over {server secret, email} with no expiry
// component: links stay valid indefinitely and validation is idempotent.
type VerifyService struct {
	users      repository.UserRepository
	secret     string
	rootDomain string
}

func NewVerifyService(users repository.UserRepository, secret, rootDomain string) *VerifyService {
	return &VerifyService{
		users:      users,
		secret:     secret,
		rootDomain: rootDomain,
	}
}

// CreateToken computes the verification digest for an email address.
func (s *VerifyService) CreateToken(email string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s", s.secret, email)))
	return hex.EncodeToString(sum[:])
}

// CreateLink builds the verification link embedded in the signup email.
func (s *VerifyService) CreateLink(email string) string {
	return fmt.Sprintf("https://%s/verify/%s/%s", s.rootDomain, url.PathEscape(email), s.CreateToken(email))
}

// Validate checks the token against the recomputed digest and, on success,
// marks the user's email as verified. Re-validating simply re-asserts the
// flag.
func (s *VerifyService) Validate(ctx context.Context, token, email string) (bool, error) {
	expected := s.CreateToken(email)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(token)) != 1 {
		return false, nil
	}

	if err := s.users.MarkEmailVerified(ctx, email); err != nil {
		return false, err
	}

	return true, nil
}
