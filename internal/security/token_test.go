package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyRoundTrip(t *testing.T) {
	verifier := NewTokenVerifier("test-secret")
	signed := signToken(t, "test-secret", jwt.MapClaims{
		"sub": "user-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	sub, err := verifier.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-42", sub)
}

func TestVerifyWrongSecret(t *testing.T) {
	verifier := NewTokenVerifier("test-secret")
	signed := signToken(t, "other-secret", jwt.MapClaims{"sub": "user-42"})

	_, err := verifier.Verify(signed)
	require.Error(t, err)
}

func TestVerifyExpiredToken(t *testing.T) {
	verifier := NewTokenVerifier("test-secret")
	signed := signToken(t, "test-secret", jwt.MapClaims{
		"sub": "user-42",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	_, err := verifier.Verify(signed)
	require.Error(t, err)
}

func TestVerifyMissingSubject(t *testing.T) {
	verifier := NewTokenVerifier("test-secret")
	signed := signToken(t, "test-secret", jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := verifier.Verify(signed)
	require.ErrorIs(t, err, errInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	verifier := NewTokenVerifier("test-secret")

	_, err := verifier.Verify("not-a-token")
	require.Error(t, err)
}
