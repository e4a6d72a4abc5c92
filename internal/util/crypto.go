package util

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashToken is the lookup key for a bearer token in the session store.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func ConstantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// MaskContact keeps the last four digits for logs.
func MaskContact(contact string) string {
	if len(contact) <= 4 {
		return "****"
	}
	return "******" + contact[len(contact)-4:]
}
