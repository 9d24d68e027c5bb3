package service

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denis-rim/node-auth/internal/domain"
)

func newTestVerifyService(t *testing.T, emails ...string) (*VerifyService, *fakeUserRepo) {
	t.Helper()

	users := newFakeUserRepo()
	for _, email := range emails {
		err := users.Create(context.Background(), &domain.User{
			ID:    uuid.New(),
			Email: email,
		})
		require.NoError(t, err)
	}

	return NewVerifyService(users, "verify-secret", "nodeauth.dev"), users
}

func TestVerifyCreateToken_Deterministic(t *testing.T) {
	t.Parallel()

	svc, _ := newTestVerifyService(t)

	assert.Equal(t, svc.CreateToken("a@x.com"), svc.CreateToken("a@x.com"))
	assert.NotEqual(t, svc.CreateToken("a@x.com"), svc.CreateToken("b@x.com"))
}

func TestVerifyCreateLink_Format(t *testing.T) {
	t.Parallel()

	svc, _ := newTestVerifyService(t)

	link := svc.CreateLink("a@x.com")
	parts := strings.Split(link, "/")
	require.Len(t, parts, 6)
	assert.Equal(t, "verify", parts[3])

	email, err := url.PathUnescape(parts[4])
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
	assert.Equal(t, svc.CreateToken("a@x.com"), parts[5])
}

func TestVerifyValidate_MarksVerified(t *testing.T) {
	t.Parallel()

	svc, users := newTestVerifyService(t, "a@x.com")

	valid, err := svc.Validate(context.Background(), svc.CreateToken("a@x.com"), "a@x.com")
	require.NoError(t, err)
	assert.True(t, valid)

	user, err := users.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.True(t, user.EmailVerified)
}

func TestVerifyValidate_Idempotent(t *testing.T) {
	t.Parallel()

	svc, users := newTestVerifyService(t, "a@x.com")
	token := svc.CreateToken("a@x.com")

	for i := 0; i < 2; i++ {
		valid, err := svc.Validate(context.Background(), token, "a@x.com")
		require.NoError(t, err)
		assert.True(t, valid)
	}

	user, err := users.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.True(t, user.EmailVerified)
}

func TestVerifyValidate_BadToken(t *testing.T) {
	t.Parallel()

	svc, users := newTestVerifyService(t, "a@x.com")

	valid, err := svc.Validate(context.Background(), "wrong-token", "a@x.com")
	require.NoError(t, err)
	assert.False(t, valid)

	user, err := users.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.False(t, user.EmailVerified)
}

func TestVerifyValidate_TokenForOtherEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newTestVerifyService(t, "a@x.com", "b@x.com")

	valid, err := svc.Validate(context.Background(), svc.CreateToken("b@x.com"), "a@x.com")
	require.NoError(t, err)
	assert.False(t, valid)
}
