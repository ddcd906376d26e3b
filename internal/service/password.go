package service

import (
	"context"
	"fmt"

	"github.com/aegis-safety/backend/pkg/workpool"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher wraps bcrypt with a configurable cost. Hashing runs on
// the shared work pool so a burst of registrations cannot starve
// request handlers.
type PasswordHasher struct {
	cost int
	pool *workpool.Pool
}

// NewPasswordHasher clamps cost into bcrypt's valid range. A cost of 0
// selects bcrypt.DefaultCost. The pool is optional.
func NewPasswordHasher(cost int, pool *workpool.Pool) *PasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &PasswordHasher{cost: cost, pool: pool}
}

// Hash derives a bcrypt hash of password.
func (h *PasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	var hash []byte
	var hashErr error

	run := func() {
		hash, hashErr = bcrypt.GenerateFromPassword([]byte(password), h.cost)
	}

	if h.pool != nil {
		if err := h.pool.Run(ctx, run); err != nil {
			return "", fmt.Errorf("hash password: %w", err)
		}
	} else {
		run()
	}

	if hashErr != nil {
		return "", fmt.Errorf("hash password: %w", hashErr)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. A malformed or empty
// hash verifies as false rather than erroring.
func (h *PasswordHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Cost returns the configured bcrypt cost.
func (h *PasswordHasher) Cost() int {
	return h.cost
}
