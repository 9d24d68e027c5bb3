package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denis-rim/node-auth/internal/domain"
	"github.com/denis-rim/node-auth/internal/repository"
)

func newTestRepository(t *testing.T) repository.SessionRepository {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewSessionRepository(client)
}

func newTestSession(token string) *domain.Session {
	now := time.Now().Truncate(time.Millisecond)
	return &domain.Session{
		SessionToken: token,
		UserID:       uuid.New(),
		Valid:        true,
		UserAgent:    "test-agent",
		IPAddress:    "127.0.0.1",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestSessionRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	session := newTestSession("tok-1")
	require.NoError(t, repo.Create(ctx, session))

	got, err := repo.GetByToken(ctx, "tok-1")
	require.NoError(t, err)

	assert.Equal(t, session.SessionToken, got.SessionToken)
	assert.Equal(t, session.UserID, got.UserID)
	assert.True(t, got.Valid)
	assert.Equal(t, session.UserAgent, got.UserAgent)
	assert.Equal(t, session.IPAddress, got.IPAddress)
	assert.Equal(t, session.CreatedAt.UnixMilli(), got.CreatedAt.UnixMilli())
	assert.Equal(t, session.UpdatedAt.UnixMilli(), got.UpdatedAt.UnixMilli())
}

func TestSessionRepository_GetMissing(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetByToken(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepository_Touch(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	session := newTestSession("tok-2")
	require.NoError(t, repo.Create(ctx, session))

	later := session.UpdatedAt.Add(5 * time.Minute)
	require.NoError(t, repo.Touch(ctx, "tok-2", later))

	got, err := repo.GetByToken(ctx, "tok-2")
	require.NoError(t, err)
	assert.Equal(t, later.UnixMilli(), got.UpdatedAt.UnixMilli())
	assert.Equal(t, session.CreatedAt.UnixMilli(), got.CreatedAt.UnixMilli())
}

func TestSessionRepository_TouchMissing(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.Touch(context.Background(), "nope", time.Now())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepository_Delete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	session := newTestSession("tok-3")
	require.NoError(t, repo.Create(ctx, session))
	require.NoError(t, repo.DeleteByToken(ctx, "tok-3"))

	_, err := repo.GetByToken(ctx, "tok-3")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Deleting again is not an error.
	assert.NoError(t, repo.DeleteByToken(ctx, "tok-3"))
}
