package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"fmt"
)

const saltSize = 64

// NewSalt generates a random per-user salt
func NewSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// HashPassword computes an HMAC-SHA512 of the password keyed by the salt
func HashPassword(password string, salt []byte) []byte {
	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	return mac.Sum(nil)
}

// VerifyPassword recomputes the keyed hash and compares it in constant time
func VerifyPassword(password string, hash, salt []byte) bool {
	if password == "" || len(hash) == 0 || len(salt) == 0 {
		return false
	}
	return hmac.Equal(HashPassword(password, salt), hash)
}
