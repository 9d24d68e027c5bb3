package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/denis-rim/node-auth/internal/domain"
	"github.com/denis-rim/node-auth/internal/repository"
	"github.com/denis-rim/node-auth/pkg/hash"
	"github.com/denis-rim/node-auth/pkg/jwt"
	"github.com/denis-rim/node-auth/pkg/totp"
)

// AuthResult is the constant-shape result of a credential check. For any
// failure (unknown email or wrong password) Authorized is false and the other
// fields are zero; the two cases are never distinguished to the caller.
type AuthResult struct {
	Authorized          bool
	UserID              uuid.UUID
	AuthenticatorSecret *string
}

// AuthService verifies credentials, gates logins on an enrolled second
// factor, and establishes sessions with their token pair.
type AuthService struct {
	users      repository.UserRepository
	sessions   *SessionService
	tokens     *jwt.TokenService
	bcryptCost int
}

func NewAuthService(
	users repository.UserRepository,
	sessions *SessionService,
	tokens *jwt.TokenService,
	bcryptCost int,
) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Authorize verifies an email/password pair. The enrolled authenticator
// secret (if any) is returned alongside the result so the caller can decide
// whether to gate on a second factor.
func (s *AuthService) Authorize(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return AuthResult{}, nil
		}
		return AuthResult{}, err
	}

	if !hash.VerifyPassword(password, user.PasswordHash) {
		return AuthResult{}, nil
	}

	return AuthResult{
		Authorized:          true,
		UserID:              user.ID,
		AuthenticatorSecret: user.AuthenticatorSecret,
	}, nil
}

// Register creates a user with a freshly hashed password.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	passwordHash, err := hash.HashPasswordWithCost(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:            uuid.New(),
		Email:         email,
		EmailVerified: false,
		PasswordHash:  passwordHash,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("[AUTH] Registered user %s", user.ID)
	return user, nil
}

// Login creates a session for an already-authorized user and issues its
// token pair. Token issuance never proceeds when session creation fails.
func (s *AuthService) Login(ctx context.Context, userID uuid.UUID, conn domain.ConnectionInfo) (*domain.TokenPair, error) {
	sessionToken, err := s.sessions.Create(ctx, userID, conn)
	if err != nil {
		return nil, err
	}

	pair, err := s.tokens.Issue(sessionToken, userID)
	if err != nil {
		return nil, err
	}

	return pair, nil
}

// Logout deletes the session referenced by the refresh token. An absent or
// unverifiable token is not an error: the caller clears cookies either way.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return nil
	}

	return s.sessions.Invalidate(ctx, claims.SessionToken)
}

// SetPassword hashes the new password and persists it. Existing sessions
// remain valid after the change.
func (s *AuthService) SetPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	passwordHash, err := hash.HashPasswordWithCost(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.UpdatePasswordHash(ctx, userID, passwordHash)
}

// EnrollTwoFactor persists the candidate authenticator secret after the
// submitted code verifies against it. Enrollment is verify-then-commit; no
// pending state is stored.
func (s *AuthService) EnrollTwoFactor(ctx context.Context, userID uuid.UUID, secret, code string) error {
	valid, err := totp.Verify(secret, code, time.Now())
	if err != nil || !valid {
		return domain.ErrInvalidCredentials
	}

	return s.users.UpdateAuthenticatorSecret(ctx, userID, secret)
}

// VerifyTwoFactorLogin re-authenticates the full credentials and validates
// the one-time code against the enrolled secret. Failure leaves the caller
// unauthenticated; no partial-credit state is kept.
func (s *AuthService) VerifyTwoFactorLogin(ctx context.Context, email, password, code string) (uuid.UUID, error) {
	result, err := s.Authorize(ctx, email, password)
	if err != nil {
		return uuid.Nil, err
	}
	if !result.Authorized || result.AuthenticatorSecret == nil {
		return uuid.Nil, domain.ErrInvalidCredentials
	}

	valid, err := totp.Verify(*result.AuthenticatorSecret, code, time.Now())
	if err != nil || !valid {
		return uuid.Nil, domain.ErrInvalidCredentials
	}

	return result.UserID, nil
}
