package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/aegis-safety/backend/pkg/clock"
)

// SecureToken pairs a plaintext token, handed to the account holder
// exactly once, with the digest that gets persisted.
type SecureToken struct {
	Plain     string
	Hash      string
	ExpiresAt time.Time
}

// TokenGenerator issues single-use tokens for email verification and
// password reset. Only the SHA-256 digest of a token is ever stored.
type TokenGenerator struct {
	clock clock.Clock
}

func NewTokenGenerator(clk clock.Clock) *TokenGenerator {
	if clk == nil {
		clk = clock.NewReal()
	}
	return &TokenGenerator{clock: clk}
}

// Generate draws 32 bytes from crypto/rand and returns the URL-safe
// token alongside its digest and expiry.
func (g *TokenGenerator) Generate(ttl time.Duration) (SecureToken, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return SecureToken{}, fmt.Errorf("generate token: %w", err)
	}

	plain := base64.RawURLEncoding.EncodeToString(raw)
	return SecureToken{
		Plain:     plain,
		Hash:      HashToken(plain),
		ExpiresAt: g.clock.Now().Add(ttl),
	}, nil
}

// Matches reports whether plain corresponds to storedHash and the
// token is still live. A token expiring exactly now is rejected.
func (g *TokenGenerator) Matches(plain, storedHash string, expiry *time.Time) bool {
	if plain == "" || storedHash == "" || expiry == nil {
		return false
	}
	if !g.clock.Now().Before(*expiry) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(HashToken(plain)), []byte(storedHash)) == 1
}

// HashToken returns the hex SHA-256 digest of a plaintext token.
func HashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
