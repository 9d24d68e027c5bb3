// Package totp implements RFC 6238 time-based one-time password generation
// and verification for authenticator-app second factors. Secrets are
// base32-encoded, codes are 6 digits over a 30-second step, and verification
// accepts one adjacent step of clock skew.
package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// Period is the TOTP time step in seconds.
	Period = 30
	// Digits is the code length.
	Digits = 6
	// Skew is the number of adjacent steps accepted on either side of now.
	Skew = 1
)

var ErrEmptySecret = errors.New("empty totp secret")

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// Verify reports whether code is valid for the base32-encoded secret at time
// now, accepting ±Skew steps. Malformed codes verify false without error.
func Verify(secret, code string, now time.Time) (bool, error) {
	trimmed := strings.TrimSpace(code)
	if len(trimmed) != Digits || !isNumeric(trimmed) {
		return false, nil
	}

	key, err := decodeSecret(secret)
	if err != nil {
		return false, err
	}

	baseCounter := now.Unix() / Period
	for step := int64(-Skew); step <= Skew; step++ {
		counter := baseCounter + step
		if counter < 0 {
			continue
		}
		generated := hotpCode(key, counter)
		if subtle.ConstantTimeCompare([]byte(generated), []byte(trimmed)) == 1 {
			return true, nil
		}
	}

	return false, nil
}

// GenerateCode returns the code for the base32-encoded secret at time t.
func GenerateCode(secret string, t time.Time) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}
	return hotpCode(key, t.Unix()/Period), nil
}

// ProvisionURI builds the otpauth:// URI an authenticator app enrolls from.
func ProvisionURI(secret, issuer, account string) string {
	label := url.PathEscape(issuer + ":" + account)

	v := url.Values{}
	v.Set("secret", secret)
	v.Set("issuer", issuer)
	v.Set("period", fmt.Sprintf("%d", Period))
	v.Set("digits", fmt.Sprintf("%d", Digits))
	v.Set("algorithm", "SHA1")

	return "otpauth://totp/" + label + "?" + v.Encode()
}

func decodeSecret(secret string) ([]byte, error) {
	normalized := strings.ToUpper(strings.TrimRight(strings.TrimSpace(secret), "="))
	if normalized == "" {
		return nil, ErrEmptySecret
	}
	key, err := b32.DecodeString(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to decode totp secret: %w", err)
	}
	return key, nil
}

func hotpCode(key []byte, counter int64) string {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], uint64(counter))

	mac := hmac.New(sha1.New, key)
	_, _ = mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	bin := (int(sum[offset])&0x7f)<<24 |
		(int(sum[offset+1])&0xff)<<16 |
		(int(sum[offset+2])&0xff)<<8 |
		(int(sum[offset+3]) & 0xff)

	mod := 1
	for i := 0; i < Digits; i++ {
		mod *= 10
	}

	return fmt.Sprintf("%0*d", Digits, bin%mod)
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
