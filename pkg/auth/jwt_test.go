package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc, err := NewJWTService("test-secret", "arogyavax", time.Hour)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(42, "Nurse Mary", "nurse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "nurse", claims.Role)
	assert.Equal(t, "Nurse Mary", claims.Name)
	assert.Equal(t, "42", claims.Subject)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	issuer, _ := NewJWTService("secret-a", "arogyavax", time.Hour)
	verifier, _ := NewJWTService("secret-b", "arogyavax", time.Hour)

	token, err := issuer.GenerateAccessToken(1, "John Doe", "patient")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	s, err := NewJWTService("secret", "arogyavax", time.Minute)
	require.NoError(t, err)

	impl := s.(*jwtService)
	impl.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := s.GenerateAccessToken(1, "John Doe", "patient")
	require.NoError(t, err)

	impl.now = time.Now
	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTService_EmptySecret(t *testing.T) {
	_, err := NewJWTService("", "arogyavax", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}
