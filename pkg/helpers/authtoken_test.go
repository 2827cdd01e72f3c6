package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthTokenSignVerify(t *testing.T) {
	m := NewAuthTokenManager("test-secret", time.Hour)

	token, exp, err := m.Sign("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	userID, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestAuthTokenRejectsWrongSecret(t *testing.T) {
	m := NewAuthTokenManager("secret-a", time.Hour)
	other := NewAuthTokenManager("secret-b", time.Hour)

	token, _, err := m.Sign("user-123")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestAuthTokenRejectsExpired(t *testing.T) {
	m := NewAuthTokenManager("test-secret", -time.Minute)

	token, _, err := m.Sign("user-123")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.Error(t, err)
}

func TestAuthTokenRejectsGarbage(t *testing.T) {
	m := NewAuthTokenManager("test-secret", time.Hour)
	_, err := m.Verify("not-a-token")
	assert.Error(t, err)
}
