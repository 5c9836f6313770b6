package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Verifier checks a presented shared secret, such as the admin or seed
// secret.
type Verifier interface {
	Verify(presented string) bool
}

// StaticSecret compares in constant time. An empty presented value never
// matches.
type StaticSecret string

func (s StaticSecret) Verify(presented string) bool {
	if presented == "" || s == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(s)) == 1
}

// HashedSecret holds a bcrypt hash of the secret, so the plain value never
// has to live in configuration.
type HashedSecret string

func (h HashedSecret) Verify(presented string) bool {
	if presented == "" || h == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(h), []byte(presented)) == nil
}

// NewVerifier prefers hash when set.
func NewVerifier(secret, hash string) Verifier {
	if hash != "" {
		return HashedSecret(hash)
	}
	return StaticSecret(secret)
}
