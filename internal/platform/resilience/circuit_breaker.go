package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// StateChangeFunc is told about every transition, outside the breaker lock.
type StateChangeFunc func(from, to CircuitState)

// CircuitStats is a snapshot of a breaker for run summaries.
type CircuitStats struct {
	State    CircuitState
	Trips    int
	Rejected int
}

// CircuitBreaker guards a remote lookup. It opens after consecutive
// failures (or at once through Trip), rejects calls for the open timeout,
// then lets a few trial calls through before closing again.
//
// The methods accept a nil receiver, which behaves as a breaker that never
// opens.
type CircuitBreaker struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig

	state    CircuitState
	failures int
	openedAt time.Time
	trials   int
	passed   int

	trips    int
	rejected int

	onChange StateChangeFunc
	now      func() time.Time
}

// NewCircuitBreaker builds a breaker from cfg, filling unset limits with
// the defaults. cfg.Enabled is not consulted; use cfg.Build for that.
func NewCircuitBreaker(cfg CircuitBreakerConfig, onChange StateChangeFunc) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:      NormalizeCircuitBreakerConfig(cfg),
		state:    CircuitStateClosed,
		onChange: onChange,
		now:      time.Now,
	}
}

// Allow reserves a call. It returns ErrCircuitOpen while the breaker is open
// or while every half-open trial slot is taken.
func (b *CircuitBreaker) Allow() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	from := b.state
	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		b.moveTo(CircuitStateHalfOpen)
	}

	var err error
	switch {
	case b.state == CircuitStateOpen:
		err = ErrCircuitOpen
	case b.state == CircuitStateHalfOpen && b.trials >= b.cfg.HalfOpenMaxReq:
		err = ErrCircuitOpen
	case b.state == CircuitStateHalfOpen:
		b.trials++
	}
	if err != nil {
		b.rejected++
	}
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
	return err
}

// Record feeds the outcome of an allowed call into the breaker. Only errors
// for which isFailure reports true count against the dependency; a nil
// isFailure counts every error.
func (b *CircuitBreaker) Record(err error, isFailure func(error) bool) {
	if err != nil && (isFailure == nil || isFailure(err)) {
		b.RecordFailure()
		return
	}
	b.RecordSuccess()
}

func (b *CircuitBreaker) RecordSuccess() {
	if b == nil {
		return
	}
	b.mu.Lock()
	from := b.state
	switch b.state {
	case CircuitStateClosed:
		b.failures = 0
	case CircuitStateHalfOpen:
		b.trials = max(b.trials-1, 0)
		b.passed++
		if b.passed >= b.cfg.HalfOpenMaxReq && b.trials == 0 {
			b.moveTo(CircuitStateClosed)
		}
	}
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
}

func (b *CircuitBreaker) RecordFailure() {
	if b == nil {
		return
	}
	b.mu.Lock()
	from := b.state
	switch b.state {
	case CircuitStateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.moveTo(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		b.moveTo(CircuitStateOpen)
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
}

// Trip opens the breaker at once, for dependencies that announce they are
// throttling us.
func (b *CircuitBreaker) Trip() {
	if b == nil {
		return
	}
	b.mu.Lock()
	from := b.state
	b.moveTo(CircuitStateOpen)
	b.mu.Unlock()

	b.notify(from, CircuitStateOpen)
}

// State reports the state a call would see now: an open breaker whose
// timeout has passed reads as half-open.
func (b *CircuitBreaker) State() CircuitState {
	return b.Stats().State
}

func (b *CircuitBreaker) Stats() CircuitStats {
	if b == nil {
		return CircuitStats{State: CircuitStateClosed}
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	state := b.state
	if state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		state = CircuitStateHalfOpen
	}
	return CircuitStats{State: state, Trips: b.trips, Rejected: b.rejected}
}

// moveTo resets the bookkeeping of the state being entered. Callers hold mu.
func (b *CircuitBreaker) moveTo(next CircuitState) {
	switch next {
	case CircuitStateOpen:
		b.openedAt = b.now()
		b.trips++
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	}
	b.trials, b.passed = 0, 0
	b.state = next
}

func (b *CircuitBreaker) notify(from, to CircuitState) {
	if from != to && b.onChange != nil {
		b.onChange(from, to)
	}
}
