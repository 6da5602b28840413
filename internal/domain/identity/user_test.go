package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		user, err := NewUser("  Admin@ArcherAndAsh.com ", "Password123")

		require.NoError(t, err)
		assert.Equal(t, "admin@archerandash.com", user.Email)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "Password123", user.PasswordHash)
		assert.True(t, user.VerifyPassword("Password123"))
		assert.False(t, user.VerifyPassword("password123"))
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewUser("admin", "Password123")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email format")
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser("admin@example.com", "short")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("fails with overlong password", func(t *testing.T) {
		_, err := NewUser("admin@example.com", strings.Repeat("a", 73))
		assert.Error(t, err)
	})
}

func TestUser_SetPassword(t *testing.T) {
	user, err := NewUser("admin@example.com", "Password123")
	require.NoError(t, err)

	require.NoError(t, user.SetPassword("NewPassword456"))
	assert.True(t, user.VerifyPassword("NewPassword456"))
	assert.False(t, user.VerifyPassword("Password123"))
}

func TestUser_RecordLogin(t *testing.T) {
	user, err := NewUser("admin@example.com", "Password123")
	require.NoError(t, err)
	assert.Nil(t, user.LastLoginAt)

	user.RecordLogin()
	assert.NotNil(t, user.LastLoginAt)
}
