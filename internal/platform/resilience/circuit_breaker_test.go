package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenMaxReq: 1}, nil)

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open trial to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open trial, got %s", state)
	}
}

func TestCircuitBreaker_NilAndDisabled(t *testing.T) {
	t.Parallel()

	b := CircuitBreakerConfig{Enabled: false}.Build(nil)
	if b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}
	b.RecordFailure()
	b.Trip()
	if err := b.Allow(); err != nil {
		t.Fatalf("expected nil breaker to allow, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed, got %s", state)
	}
}

func TestCircuitBreaker_RecordAndTrip(t *testing.T) {
	t.Parallel()

	errTransient := errors.New("transient")
	errNotFound := errors.New("not found")
	isTransient := func(err error) bool { return errors.Is(err, errTransient) }

	b := CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute}.Build(nil)
	b.Record(errNotFound, isTransient)
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected non transient error to keep breaker closed, got %s", state)
	}
	b.Record(errTransient, isTransient)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after transient failure, got %s", state)
	}

	other := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 10}, nil)
	other.Trip()
	if err := other.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected tripped breaker to reject, got %v", err)
	}
}

func TestCircuitBreaker_ReportsTransitionsAndStats(t *testing.T) {
	t.Parallel()

	var transitions []string
	b := CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1}.Build(
		func(from, to CircuitState) { transitions = append(transitions, string(from)+">"+string(to)) },
	)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	b.RecordFailure()
	_ = b.Allow()
	_ = b.Allow()
	now = now.Add(2 * time.Minute)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected trial call after timeout, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second trial to be rejected, got %v", err)
	}
	b.RecordSuccess()

	want := []string{"closed>open", "open>half_open", "half_open>closed"}
	if len(transitions) != len(want) {
		t.Fatalf("expected transitions %v, got %v", want, transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("expected transitions %v, got %v", want, transitions)
		}
	}

	stats := b.Stats()
	if stats.State != CircuitStateClosed || stats.Trips != 1 || stats.Rejected != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
