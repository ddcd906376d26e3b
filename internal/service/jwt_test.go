package service

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/aegis-safety/backend/internal/errors"
	"github.com/aegis-safety/backend/pkg/clock"
)

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewManual(start)
	issuer := NewTokenIssuer("test-secret", 90*24*time.Hour, clk)

	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.AccountID != 42 {
		t.Errorf("Expected account ID 42, got %d", claims.AccountID)
	}
	if !claims.IssuedAt.Equal(start.Truncate(time.Second)) {
		t.Errorf("Expected iat %v, got %v", start, claims.IssuedAt)
	}
	if !claims.ExpiresAt.Equal(start.Add(90 * 24 * time.Hour).Truncate(time.Second)) {
		t.Errorf("Expected exp %v, got %v", start.Add(90*24*time.Hour), claims.ExpiresAt)
	}
}

func TestTokenIssuer_ExpiredToken(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewManual(start)
	issuer := NewTokenIssuer("test-secret", time.Hour, clk)

	token, err := issuer.Issue(7)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	clk.Advance(2 * time.Hour)
	if _, err := issuer.Verify(token); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	clk := clock.NewManual(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	issuer := NewTokenIssuer("secret-a", time.Hour, clk)
	other := NewTokenIssuer("secret-b", time.Hour, clk)

	token, err := issuer.Issue(7)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := other.Verify(token); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenIssuer_MalformedToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour, nil)

	for _, tok := range []string{"", "not.a.jwt", "garbage"} {
		if _, err := issuer.Verify(tok); !errors.Is(err, apperrors.ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken for %q, got %v", tok, err)
		}
	}
}
