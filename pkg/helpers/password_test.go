package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)
	require.Len(t, salt, saltBytes*2) // hex encoded

	hash := HashPassword("hunter2-but-longer", salt)
	assert.Len(t, hash, pbkdf2KeyLen*2)
	assert.True(t, VerifyPassword("hunter2-but-longer", salt, hash))
	assert.False(t, VerifyPassword("hunter2-but-wrong", salt, hash))
}

func TestHashDependsOnSalt(t *testing.T) {
	s1, err := NewSalt()
	require.NoError(t, err)
	s2, err := NewSalt()
	require.NoError(t, err)
	require.NotEqual(t, s1, s2)

	assert.NotEqual(t, HashPassword("same-password", s1), HashPassword("same-password", s2))
}

func TestHashIsDeterministic(t *testing.T) {
	assert.Equal(t, HashPassword("p", "deadbeef"), HashPassword("p", "deadbeef"))
}
