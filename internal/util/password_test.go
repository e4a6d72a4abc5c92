package util

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordCipher(t *testing.T) {
	cipher := NewPasswordCipher(10)

	t.Run("EncryptWithSalt is deterministic", func(t *testing.T) {
		h1 := cipher.EncryptWithSalt("Secret@123", "salt-a")
		h2 := cipher.EncryptWithSalt("Secret@123", "salt-a")
		assert.Equal(t, h1, h2)
		assert.Len(t, h1, 128)
	})

	t.Run("salt changes the hash", func(t *testing.T) {
		h1 := cipher.EncryptWithSalt("Secret@123", "salt-a")
		h2 := cipher.EncryptWithSalt("Secret@123", "salt-b")
		assert.NotEqual(t, h1, h2)
	})

	t.Run("password changes the hash", func(t *testing.T) {
		h1 := cipher.EncryptWithSalt("Secret@123", "salt-a")
		h2 := cipher.EncryptWithSalt("secret@123", "salt-a")
		assert.NotEqual(t, h1, h2)
	})

	t.Run("Encrypt returns a uuid salt matching re-derivation", func(t *testing.T) {
		salt, hash := cipher.Encrypt("Secret@123")
		_, err := uuid.Parse(salt)
		require.NoError(t, err)
		assert.Equal(t, cipher.EncryptWithSalt("Secret@123", salt), hash)
	})

	t.Run("Encrypt never repeats a salt", func(t *testing.T) {
		seen := make(map[string]struct{}, 10000)
		for i := 0; i < 10000; i++ {
			salt, _ := cipher.Encrypt("Secret@123")
			_, dup := seen[salt]
			require.False(t, dup, "duplicate salt %s", salt)
			seen[salt] = struct{}{}
		}
	})

	t.Run("Verify", func(t *testing.T) {
		salt, hash := cipher.Encrypt("Secret@123")
		assert.True(t, cipher.Verify("Secret@123", salt, hash))
		assert.False(t, cipher.Verify("secret@123", salt, hash))
		assert.False(t, cipher.Verify("Secret@123", "other", hash))
	})

	t.Run("iteration count is part of the hash", func(t *testing.T) {
		other := NewPasswordCipher(11)
		assert.NotEqual(t,
			cipher.EncryptWithSalt("Secret@123", "salt-a"),
			other.EncryptWithSalt("Secret@123", "salt-a"))
	})

	t.Run("non-positive iterations fall back to the default", func(t *testing.T) {
		assert.Equal(t,
			NewPasswordCipher(0).EncryptWithSalt("Secret@123", "salt-a"),
			NewPasswordCipher(DefaultHashIterations).EncryptWithSalt("Secret@123", "salt-a"))
	})
}
