package infra

import (
	"errors"
	"sync"
	"time"
)

// circuit_breaker.go
// Closed → Open → Half-Open breaker wrapped around outbound calls. The
// console client uses one per backend service so a downed backend fast-fails
// instead of costing the full request deadline on every keystroke.

// CBState is the breaker state, readable for logs and health output.
type CBState int

const (
	CBClosed CBState = iota
	CBOpen
	CBHalfOpen
)

func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// ErrCircuitOpen is returned by Execute while the breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig tunes one breaker instance. Zero values fall back to
// 5 failures to trip, 2 successes to close, 60s open window.
type CircuitBreakerConfig struct {
	FailureThreshold int
	SuccessThreshold int
	OpenTimeout      time.Duration
}

// CircuitBreaker tracks a consecutive-outcome streak: negative values count
// failures while closed, positive values count probe successes while
// half-open. Safe for concurrent use.
type CircuitBreaker struct {
	cfg CircuitBreakerConfig

	mu       sync.Mutex
	state    CBState
	streak   int
	openedAt time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 2
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 60 * time.Second
	}
	return &CircuitBreaker{cfg: cfg}
}

// State reports the current state, promoting Open to Half-Open once the
// open window has elapsed.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.stateLocked()
}

func (cb *CircuitBreaker) stateLocked() CBState {
	if cb.state == CBOpen && time.Since(cb.openedAt) >= cb.cfg.OpenTimeout {
		cb.state = CBHalfOpen
		cb.streak = 0
	}
	return cb.state
}

// Execute runs fn unless the breaker is open, in which case it returns
// ErrCircuitOpen without calling fn. The outcome feeds the state machine.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	if cb.stateLocked() == CBOpen {
		cb.mu.Unlock()
		return ErrCircuitOpen
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	cb.record(err == nil)
	cb.mu.Unlock()
	return err
}

// record applies one call outcome under the lock.
func (cb *CircuitBreaker) record(ok bool) {
	switch cb.state {
	case CBClosed:
		if ok {
			cb.streak = 0
			return
		}
		cb.streak--
		if -cb.streak >= cb.cfg.FailureThreshold {
			cb.trip()
		}
	case CBHalfOpen:
		if !ok {
			// failed probe reopens the window
			cb.trip()
			return
		}
		cb.streak++
		if cb.streak >= cb.cfg.SuccessThreshold {
			cb.state = CBClosed
			cb.streak = 0
		}
	}
}

func (cb *CircuitBreaker) trip() {
	cb.state = CBOpen
	cb.streak = 0
	cb.openedAt = time.Now()
}
