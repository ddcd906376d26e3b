package service

import (
	"context"
	"strings"
	"testing"

	"github.com/aegis-safety/backend/pkg/workpool"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost, nil)

	hash, err := hasher.Hash(context.Background(), "Sup3rSecret")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "Sup3rSecret" {
		t.Fatal("Expected hash to differ from plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("Expected bcrypt hash, got %q", hash)
	}

	if !hasher.Verify(hash, "Sup3rSecret") {
		t.Error("Expected correct password to verify")
	}
	if hasher.Verify(hash, "wrong-password") {
		t.Error("Expected wrong password to fail verification")
	}
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost, nil)

	if hasher.Verify("", "anything") {
		t.Error("Expected empty hash to fail verification")
	}
	if hasher.Verify("not-a-bcrypt-hash", "anything") {
		t.Error("Expected malformed hash to fail verification")
	}
}

func TestPasswordHasher_CostClamping(t *testing.T) {
	if got := NewPasswordHasher(0, nil).Cost(); got != bcrypt.DefaultCost {
		t.Errorf("Expected default cost for 0, got %d", got)
	}
	if got := NewPasswordHasher(1, nil).Cost(); got != bcrypt.MinCost {
		t.Errorf("Expected min cost for 1, got %d", got)
	}
	if got := NewPasswordHasher(99, nil).Cost(); got != bcrypt.MaxCost {
		t.Errorf("Expected max cost for 99, got %d", got)
	}
}

func TestPasswordHasher_RunsOnPool(t *testing.T) {
	pool := workpool.New(2, nil)
	defer pool.Close()

	hasher := NewPasswordHasher(bcrypt.MinCost, pool)

	hash, err := hasher.Hash(context.Background(), "Sup3rSecret")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if !hasher.Verify(hash, "Sup3rSecret") {
		t.Error("Expected pooled hash to verify")
	}
}
