package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/denis-rim/node-auth/internal/domain"
	"github.com/denis-rim/node-auth/internal/repository"
)

type sessionRepository struct {
	rdb *redis.Client
}

// NewSessionRepository creates a Redis-backed session repository. Records are
// stored as hashes keyed by the opaque session token, so lookup is O(1) and
// the token is the natural unique key. No TTL is set: logout is the only way
// a session record goes away.
func NewSessionRepository(rdb *redis.Client) repository.SessionRepository {
	return &sessionRepository{rdb: rdb}
}

func sessionKey(sessionToken string) string {
	return fmt.Sprintf("session:%s", sessionToken)
}

// Create inserts a new session record
func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	key := sessionKey(session.SessionToken)

	err := r.rdb.HSet(ctx, key, map[string]interface{}{
		"user_id":    session.UserID.String(),
		"valid":      strconv.FormatBool(session.Valid),
		"user_agent": session.UserAgent,
		"ip_address": session.IPAddress,
		"created_at": session.CreatedAt.UnixMilli(),
		"updated_at": session.UpdatedAt.UnixMilli(),
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetByToken retrieves a session by its token
func (r *sessionRepository) GetByToken(ctx context.Context, sessionToken string) (*domain.Session, error) {
	fields, err := r.rdb.HGetAll(ctx, sessionKey(sessionToken)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrSessionNotFound
	}

	userID, err := uuid.Parse(fields["user_id"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse session user id: %w", err)
	}

	valid, _ := strconv.ParseBool(fields["valid"])
	createdAt, _ := strconv.ParseInt(fields["created_at"], 10, 64)
	updatedAt, _ := strconv.ParseInt(fields["updated_at"], 10, 64)

	return &domain.Session{
		SessionToken: sessionToken,
		UserID:       userID,
		Valid:        valid,
		UserAgent:    fields["user_agent"],
		IPAddress:    fields["ip_address"],
		CreatedAt:    time.UnixMilli(createdAt),
		UpdatedAt:    time.UnixMilli(updatedAt),
	}, nil
}

// Touch bumps the session's updated_at timestamp
func (r *sessionRepository) Touch(ctx context.Context, sessionToken string, at time.Time) error {
	key := sessionKey(sessionToken)

	exists, err := r.rdb.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}
	if exists == 0 {
		return domain.ErrSessionNotFound
	}

	if err := r.rdb.HSet(ctx, key, "updated_at", at.UnixMilli()).Err(); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}

	return nil
}

// DeleteByToken removes a session record. Deleting a missing session is not
// an error.
func (r *sessionRepository) DeleteByToken(ctx context.Context, sessionToken string) error {
	if err := r.rdb.Del(ctx, sessionKey(sessionToken)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
