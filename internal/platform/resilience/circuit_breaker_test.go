package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	t.Parallel()

	breaker := NewCircuitBreaker(3, time.Minute, 1)

	for i := 0; i < 3; i++ {
		if err := breaker.Allow(); err != nil {
			t.Fatalf("Allow() before threshold: %v", err)
		}
		breaker.RecordFailure()
	}

	if err := breaker.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("Allow() after threshold = %v, want ErrCircuitOpen", err)
	}
	if state := breaker.State(); state != CircuitStateOpen {
		t.Fatalf("State() = %s, want open", state)
	}
}

func TestCircuitBreaker_SuccessResetsFailureStreak(t *testing.T) {
	t.Parallel()

	breaker := NewCircuitBreaker(2, time.Minute, 1)

	breaker.RecordFailure()
	breaker.RecordSuccess()
	breaker.RecordFailure()

	if err := breaker.Allow(); err != nil {
		t.Fatalf("Allow() with interleaved success: %v", err)
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	t.Parallel()

	breaker := NewCircuitBreaker(1, 10*time.Millisecond, 1)
	current := time.Unix(1000, 0)
	breaker.now = func() time.Time { return current }

	breaker.RecordFailure()
	if err := breaker.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("Allow() while open = %v, want ErrCircuitOpen", err)
	}

	current = current.Add(20 * time.Millisecond)
	if err := breaker.Allow(); err != nil {
		t.Fatalf("Allow() after open timeout: %v", err)
	}
	breaker.RecordSuccess()

	if state := breaker.State(); state != CircuitStateClosed {
		t.Fatalf("State() after half-open success = %s, want closed", state)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	t.Parallel()

	breaker := NewCircuitBreaker(1, 10*time.Millisecond, 1)
	current := time.Unix(1000, 0)
	breaker.now = func() time.Time { return current }

	breaker.RecordFailure()
	current = current.Add(20 * time.Millisecond)

	if err := breaker.Allow(); err != nil {
		t.Fatalf("Allow() in half-open: %v", err)
	}
	breaker.RecordFailure()

	if err := breaker.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("Allow() after half-open failure = %v, want ErrCircuitOpen", err)
	}
}

func TestNormalizeCircuitBreakerConfig(t *testing.T) {
	t.Parallel()

	cfg := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: true})
	defaults := DefaultCircuitBreakerConfig()

	if cfg.FailureThreshold != defaults.FailureThreshold ||
		cfg.OpenTimeout != defaults.OpenTimeout ||
		cfg.HalfOpenMaxReq != defaults.HalfOpenMaxReq {
		t.Fatalf("normalized config = %+v, want defaults backfilled", cfg)
	}
}
