package security

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword produces a bcrypt hash for storing admin credentials.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a candidate password against the configured
// credential. A bcrypt hash takes precedence; the plaintext fallback exists
// for local development configs only.
func VerifyPassword(candidate, plaintext, hash string) bool {
	if hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
	}
	if plaintext == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(plaintext)) == 1
}
