package service

import (
	"testing"
	"time"

	"github.com/aegis-safety/backend/pkg/clock"
)

func TestTokenGenerator_Generate(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	gen := NewTokenGenerator(clock.NewManual(start))

	token, err := gen.Generate(10 * time.Minute)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if token.Plain == "" {
		t.Error("Expected non-empty plaintext token")
	}
	if token.Hash != HashToken(token.Plain) {
		t.Error("Expected hash to be the digest of the plaintext")
	}
	if token.Hash == token.Plain {
		t.Error("Expected stored hash to differ from plaintext")
	}
	if !token.ExpiresAt.Equal(start.Add(10 * time.Minute)) {
		t.Errorf("Expected expiry %v, got %v", start.Add(10*time.Minute), token.ExpiresAt)
	}

	other, err := gen.Generate(10 * time.Minute)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if other.Plain == token.Plain {
		t.Error("Expected distinct tokens on consecutive calls")
	}
}

func TestTokenGenerator_Matches(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewManual(start)
	gen := NewTokenGenerator(clk)

	token, err := gen.Generate(10 * time.Minute)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !gen.Matches(token.Plain, token.Hash, &token.ExpiresAt) {
		t.Error("Expected live token to match")
	}
	if gen.Matches("not-the-token", token.Hash, &token.ExpiresAt) {
		t.Error("Expected wrong plaintext to be rejected")
	}
	if gen.Matches("", token.Hash, &token.ExpiresAt) {
		t.Error("Expected empty plaintext to be rejected")
	}
	if gen.Matches(token.Plain, "", &token.ExpiresAt) {
		t.Error("Expected empty stored hash to be rejected")
	}
	if gen.Matches(token.Plain, token.Hash, nil) {
		t.Error("Expected nil expiry to be rejected")
	}
}

func TestTokenGenerator_ExpiryBoundary(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewManual(start)
	gen := NewTokenGenerator(clk)

	token, err := gen.Generate(10 * time.Minute)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	clk.Set(token.ExpiresAt.Add(-time.Nanosecond))
	if !gen.Matches(token.Plain, token.Hash, &token.ExpiresAt) {
		t.Error("Expected token to match just before expiry")
	}

	// A token expiring exactly now is already dead.
	clk.Set(token.ExpiresAt)
	if gen.Matches(token.Plain, token.Hash, &token.ExpiresAt) {
		t.Error("Expected token rejected at the exact expiry instant")
	}

	clk.Set(token.ExpiresAt.Add(time.Minute))
	if gen.Matches(token.Plain, token.Hash, &token.ExpiresAt) {
		t.Error("Expected token rejected after expiry")
	}
}
