package jwt

import (
	"testing"

	"github.com/Jevon1999/api-presensi/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewJWTService("test-secret", "1h")
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_InvalidTTL(t *testing.T) {
	_, err := NewJWTService("secret", "one hour")
	assert.Error(t, err)
}

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := newTestService(t)

	token, expiresAt, err := svc.GenerateAccessToken(user.User{ID: "u-1", Email: "admin@example.com", Role: user.RoleAdmin})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))

	parsed, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := parsed.AsMap(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims["user_id"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
	assert.Equal(t, true, claims["is_admin"])
}

func TestSSEToken(t *testing.T) {
	svc := newTestService(t)

	token, expiresIn, err := svc.GenerateSSEToken("u-1")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	userID, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)

	access, _, err := svc.GenerateAccessToken(user.User{ID: "u-1", Role: user.RoleAdmin})
	require.NoError(t, err)
	_, err = svc.ValidateSSEToken(access)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateSSEToken("not-a-token")
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := newTestService(t)

	token, _, err := svc.GenerateAccessToken(user.User{ID: "u-1", Role: user.RoleAdmin})
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(token))
	svc.RevokeToken(token)
	assert.True(t, svc.IsTokenRevoked(token))
}
