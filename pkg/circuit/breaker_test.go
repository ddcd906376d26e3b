package circuit

import (
	"errors"
	"testing"
	"time"

	"github.com/aegis-safety/backend/pkg/clock"
)

var errDownstream = errors.New("downstream unavailable")

func failing() error { return errDownstream }
func succeeding() error { return nil }

func TestBreaker_StartsClosed(t *testing.T) {
	b := NewBreaker("test", DefaultConfig(), nil, nil)

	if b.State() != StateClosed {
		t.Errorf("Expected initial state CLOSED, got %s", b.State())
	}
	if err := b.Do(succeeding); err != nil {
		t.Errorf("Expected call to pass through, got %v", err)
	}
}

func TestBreaker_OpensAtThreshold(t *testing.T) {
	clk := clock.NewManual(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	b := NewBreaker("test", Config{FailureThreshold: 3, Cooldown: 30 * time.Second}, clk, nil)

	for i := 0; i < 3; i++ {
		if err := b.Do(failing); !errors.Is(err, errDownstream) {
			t.Fatalf("Expected downstream error on call %d, got %v", i+1, err)
		}
	}

	if b.State() != StateOpen {
		t.Fatalf("Expected state OPEN after threshold, got %s", b.State())
	}
	if err := b.Do(succeeding); !errors.Is(err, ErrOpen) {
		t.Errorf("Expected ErrOpen while open, got %v", err)
	}
}

func TestBreaker_SuccessResetsCount(t *testing.T) {
	b := NewBreaker("test", Config{FailureThreshold: 3, Cooldown: time.Minute}, nil, nil)

	b.Do(failing)
	b.Do(failing)
	b.Do(succeeding)
	b.Do(failing)
	b.Do(failing)

	if b.State() != StateClosed {
		t.Errorf("Expected CLOSED after interleaved success, got %s", b.State())
	}
}

func TestBreaker_ProbeAfterCooldown(t *testing.T) {
	clk := clock.NewManual(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	b := NewBreaker("test", Config{FailureThreshold: 2, Cooldown: 30 * time.Second}, clk, nil)

	b.Do(failing)
	b.Do(failing)
	if b.State() != StateOpen {
		t.Fatalf("Expected OPEN, got %s", b.State())
	}

	// Before the cooldown even a healthy downstream is not probed.
	clk.Advance(10 * time.Second)
	if err := b.Do(succeeding); !errors.Is(err, ErrOpen) {
		t.Fatalf("Expected ErrOpen before cooldown, got %v", err)
	}

	// The probe after cooldown closes the breaker on success.
	clk.Advance(25 * time.Second)
	if err := b.Do(succeeding); err != nil {
		t.Fatalf("Expected probe to run, got %v", err)
	}
	if b.State() != StateClosed {
		t.Errorf("Expected CLOSED after successful probe, got %s", b.State())
	}
}

func TestBreaker_FailedProbeReopens(t *testing.T) {
	clk := clock.NewManual(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	b := NewBreaker("test", Config{FailureThreshold: 2, Cooldown: 30 * time.Second}, clk, nil)

	b.Do(failing)
	b.Do(failing)

	clk.Advance(time.Minute)
	if err := b.Do(failing); !errors.Is(err, errDownstream) {
		t.Fatalf("Expected probe to reach downstream, got %v", err)
	}
	if b.State() != StateOpen {
		t.Fatalf("Expected reopened breaker, got %s", b.State())
	}

	// The cooldown restarts from the failed probe.
	clk.Advance(10 * time.Second)
	if err := b.Do(succeeding); !errors.Is(err, ErrOpen) {
		t.Errorf("Expected ErrOpen during fresh cooldown, got %v", err)
	}
	clk.Advance(30 * time.Second)
	if err := b.Do(succeeding); err != nil {
		t.Errorf("Expected probe after fresh cooldown, got %v", err)
	}
}
