package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	svc, err := NewTokenService("test-secret", time.Hour, 24*time.Hour)
	require.NoError(t, err)

	token, err := svc.Sign("user-1", "a@b.com", "Ada", "user", TokenAccess)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, TokenAccess, claims.Type)
}

func TestTokenServiceRejectsExpired(t *testing.T) {
	svc, err := NewTokenService("test-secret", -time.Hour, 24*time.Hour)
	require.NoError(t, err)
	// Negative TTL falls back to default, so force expiry via a tiny TTL.
	svc.accessTTL = -time.Minute

	token, err := svc.Sign("user-1", "", "", "", TokenAccess)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenServiceRejectsWrongSecret(t *testing.T) {
	a, _ := NewTokenService("secret-a", time.Hour, time.Hour)
	b, _ := NewTokenService("secret-b", time.Hour, time.Hour)

	token, err := a.Sign("user-1", "", "", "", TokenAccess)
	require.NoError(t, err)

	_, err = b.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService("", time.Hour, time.Hour)
	assert.Error(t, err)
}

func TestSignRequiresSubject(t *testing.T) {
	svc, _ := NewTokenService("test-secret", time.Hour, time.Hour)
	_, err := svc.Sign("", "", "", "", TokenAccess)
	assert.Error(t, err)
}
