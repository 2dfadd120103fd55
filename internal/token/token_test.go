package token

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(testSecret, time.Hour)
	require.NoError(t, err)
	return c
}

func TestNewCodec_RequiresSecret(t *testing.T) {
	_, err := NewCodec("", time.Hour)
	assert.Error(t, err)

	_, err = NewCodec(testSecret, 0)
	assert.Error(t, err)
}

func TestCodec_RoundTrip(t *testing.T) {
	c := newTestCodec(t)

	tokenString, err := c.Issue(123)
	require.NoError(t, err)

	userID, err := c.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, uint(123), userID)

	// Verification is idempotent: the same token yields the same subject.
	again, err := c.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, again)
}

func TestCodec_Expired(t *testing.T) {
	c := newTestCodec(t)

	claims := jwt.MapClaims{
		"sub": "123",
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = c.Verify(expired)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestCodec_BadSignature(t *testing.T) {
	c := newTestCodec(t)

	other, err := NewCodec("a-completely-different-secret-0000000000", time.Hour)
	require.NoError(t, err)

	tokenString, err := other.Issue(123)
	require.NoError(t, err)

	_, err = c.Verify(tokenString)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestCodec_Malformed(t *testing.T) {
	c := newTestCodec(t)

	tests := []struct {
		name  string
		token string
	}{
		{"Empty", ""},
		{"Garbage", "not-a-token"},
		{"Truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Verify(tt.token)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestCodec_MissingSubject(t *testing.T) {
	c := newTestCodec(t)

	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = c.Verify(noSub)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestCodec_NonNumericSubject(t *testing.T) {
	c := newTestCodec(t)

	claims := jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	badSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = c.Verify(badSub)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestCodec_RejectsUnexpectedSigningMethod(t *testing.T) {
	c := newTestCodec(t)

	claims := jwt.MapClaims{
		"sub": strconv.Itoa(123),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = c.Verify(unsigned)
	assert.Error(t, err)
}
