package util

import (
	"crypto/sha512"
	"encoding/hex"

	"github.com/google/uuid"
	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultHashIterations = 1000
	hashKeyLength         = 64
)

// PasswordCipher derives salted PBKDF2-HMAC-SHA512 password hashes.
type PasswordCipher struct {
	iterations int
}

func NewPasswordCipher(iterations int) *PasswordCipher {
	if iterations <= 0 {
		iterations = DefaultHashIterations
	}
	return &PasswordCipher{iterations: iterations}
}

// Encrypt hashes password under a freshly generated salt.
func (c *PasswordCipher) Encrypt(password string) (salt, hash string) {
	salt = uuid.NewString()
	return salt, c.EncryptWithSalt(password, salt)
}

// EncryptWithSalt is deterministic for a given password and salt.
func (c *PasswordCipher) EncryptWithSalt(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), c.iterations, hashKeyLength, sha512.New)
	return hex.EncodeToString(key)
}

// Verify re-derives the hash and compares it in constant time.
func (c *PasswordCipher) Verify(password, salt, hash string) bool {
	return ConstantTimeEqual(c.EncryptWithSalt(password, salt), hash)
}
