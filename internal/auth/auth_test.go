package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestManagerGenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", "1h")

	token, err := m.Generate("650000000000000000000001", "EMP-ADMIN001", "admin@greenscape.lk", "System Admin", "admin")
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "EMP-ADMIN001", claims.ServiceNum)
	assert.Equal(t, "admin@greenscape.lk", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestManagerRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", "1h").Generate("id", "EMP-1", "a@b.c", "A", "driver")
	require.NoError(t, err)

	_, err = NewManager("secret-b", "1h").Parse(token)
	assert.Error(t, err)
}

func TestManagerBadExpirationFallsBack(t *testing.T) {
	// An unparseable expiration must not produce instantly-dead tokens.
	m := NewManager("secret", "not-a-duration")
	token, err := m.Generate("id", "EMP-1", "a@b.c", "A", "driver")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.NoError(t, err)
}

func TestGeneratePassword(t *testing.T) {
	p1, err := GeneratePassword(10)
	require.NoError(t, err)
	assert.Len(t, p1, 10)

	p2, err := GeneratePassword(10)
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2)

	// Lookalike characters stay out of hand-typed passwords.
	for _, banned := range []string{"0", "O", "1", "l", "I"} {
		assert.False(t, strings.Contains(p1, banned), "password contains %q", banned)
	}

	short, err := GeneratePassword(3)
	require.NoError(t, err)
	assert.Len(t, short, 8)
}
