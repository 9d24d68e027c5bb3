package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/denis-rim/node-auth/internal/domain"
	"github.com/denis-rim/node-auth/internal/repository"
	"github.com/denis-rim/node-auth/pkg/jwt"
)

// Resolution is the outcome of a successful cookie resolution. Rotated is
// non-nil only on the refresh path, where both tokens are transparently
// re-issued and the caller must reset the cookies.
type Resolution struct {
	User    *domain.User
	Rotated *domain.TokenPair
}

// Resolver is the request-time entry point: given the two auth cookies it
// resolves the authenticated user, performing sliding-session renewal as a
// side effect on the refresh path.
type Resolver struct {
	users    repository.UserRepository
	sessions *SessionService
	tokens   *jwt.TokenService
}

func NewResolver(users repository.UserRepository, sessions *SessionService, tokens *jwt.TokenService) *Resolver {
	return &Resolver{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
	}
}

// UserFromCookies resolves the current user from the access and refresh
// cookie values (either may be empty).
//
// The access path is signature-only: no session lookup happens, so an
// invalidated session's access token keeps resolving until the cookie dies
// client-side. When the access cookie is present, its outcome is final; a
// bad access token does not fall back to the refresh path.
//
// The refresh path requires an existing, valid session. On success it bumps
// the session's updated_at and re-issues both tokens (sliding expiration).
//
// Every failure degrades to ErrInvalidCredentials; the boundary treats that
// as unauthenticated and surfaces nothing further.
func (r *Resolver) UserFromCookies(ctx context.Context, accessToken, refreshToken string) (*Resolution, error) {
	if accessToken != "" {
		return r.resolveAccess(ctx, accessToken)
	}

	if refreshToken != "" {
		return r.resolveRefresh(ctx, refreshToken)
	}

	return nil, domain.ErrInvalidCredentials
}

func (r *Resolver) resolveAccess(ctx context.Context, accessToken string) (*Resolution, error) {
	claims, err := r.tokens.Verify(accessToken)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return &Resolution{User: user}, nil
}

func (r *Resolver) resolveRefresh(ctx context.Context, refreshToken string) (*Resolution, error) {
	claims, err := r.tokens.Verify(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	session, err := r.sessions.Find(ctx, claims.SessionToken)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !session.Valid {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := r.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := r.tokens.Issue(session.SessionToken, user.ID)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := r.sessions.Touch(ctx, session.SessionToken); err != nil {
		log.Printf("[RESOLVER] Failed to touch session: %v", err)
	}

	return &Resolution{User: user, Rotated: pair}, nil
}
