package totp

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// base32 encoding of the RFC 6238 SHA-1 test key "12345678901234567890".
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

// Last six digits of the RFC 6238 Appendix B reference values.
func TestGenerateCode_RFC6238Vectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		unix int64
		want string
	}{
		{59, "287082"},
		{1111111109, "081804"},
		{1111111111, "050471"},
		{1234567890, "005924"},
		{2000000000, "279037"},
		{20000000000, "353130"},
	}

	for _, tt := range tests {
		code, err := GenerateCode(rfcSecret, time.Unix(tt.unix, 0))
		require.NoError(t, err)
		assert.Equal(t, tt.want, code, "T=%d", tt.unix)
	}
}

func TestVerify_CurrentStep(t *testing.T) {
	t.Parallel()

	now := time.Unix(1111111109, 0)
	ok, err := Verify(rfcSecret, "081804", now)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_AdjacentStepSkew(t *testing.T) {
	t.Parallel()

	now := time.Unix(2000000000, 0)

	previous, err := GenerateCode(rfcSecret, now.Add(-Period*time.Second))
	require.NoError(t, err)
	next, err := GenerateCode(rfcSecret, now.Add(Period*time.Second))
	require.NoError(t, err)
	twoBack, err := GenerateCode(rfcSecret, now.Add(-2*Period*time.Second))
	require.NoError(t, err)

	ok, err := Verify(rfcSecret, previous, now)
	require.NoError(t, err)
	assert.True(t, ok, "previous step must verify")

	ok, err = Verify(rfcSecret, next, now)
	require.NoError(t, err)
	assert.True(t, ok, "next step must verify")

	ok, err = Verify(rfcSecret, twoBack, now)
	require.NoError(t, err)
	assert.False(t, ok, "two steps back must not verify")
}

func TestVerify_MalformedCodes(t *testing.T) {
	t.Parallel()

	now := time.Unix(59, 0)

	for _, code := range []string{"", "12345", "1234567", "28708a", "28 082"} {
		ok, err := Verify(rfcSecret, code, now)
		require.NoError(t, err)
		assert.False(t, ok, "code %q", code)
	}
}

func TestVerify_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := Verify("", "287082", time.Unix(59, 0))
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestVerify_SecretNormalization(t *testing.T) {
	t.Parallel()

	now := time.Unix(59, 0)
	padded := strings.ToLower(rfcSecret) + "=="

	ok, err := Verify(padded, "287082", now)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProvisionURI(t *testing.T) {
	t.Parallel()

	uri := ProvisionURI(rfcSecret, "nodeauth.dev", "a@x.com")

	assert.True(t, strings.HasPrefix(uri, "otpauth://totp/"))
	assert.Contains(t, uri, "secret="+rfcSecret)
	assert.Contains(t, uri, "issuer=nodeauth.dev")
	assert.Contains(t, uri, "digits=6")
	assert.Contains(t, uri, "period=30")
}
