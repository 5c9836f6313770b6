package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	h := PasswordHasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	ok, err := h.Compare(hash, "hunter2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare(hash, "hunter3")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = h.Compare("plaintext", "plaintext")
	assert.Error(t, err)
}

func TestTokenIssuer(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.Issue(42)
	require.NoError(t, err)

	id, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewTokenIssuer("other", time.Hour).Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewTokenIssuer("secret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("alg none rejected", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = issuer.Parse(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("no expiry rejected", func(t *testing.T) {
		noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "42"}).SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = issuer.Parse(noExp)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestVerifiers(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("adminsecret"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name      string
		verifier  Verifier
		presented string
		want      bool
	}{
		{"static match", StaticSecret("adminsecret"), "adminsecret", true},
		{"static mismatch", StaticSecret("adminsecret"), "adminsecreT", false},
		{"static prefix", StaticSecret("adminsecret"), "admin", false},
		{"static empty presented", StaticSecret("adminsecret"), "", false},
		{"static empty configured", StaticSecret(""), "", false},
		{"hashed match", HashedSecret(hash), "adminsecret", true},
		{"hashed mismatch", HashedSecret(hash), "nope", false},
		{"hashed empty", HashedSecret(hash), "", false},
		{"factory prefers hash", NewVerifier("plain", string(hash)), "adminsecret", true},
		{"factory ignores plain when hashed", NewVerifier("plain", string(hash)), "plain", false},
		{"factory static", NewVerifier("plain", ""), "plain", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.verifier.Verify(tt.presented))
		})
	}
}
