package cache

import (
	"sync"
	"time"
)

type breakerState int

const (
	breakerClosed breakerState = iota
	breakerOpen
	breakerHalfOpen
)

// CircuitBreaker keeps a flapping redis from slowing every request down.
// After maxFailures consecutive failures it opens and calls fail fast with
// ErrCacheDown until the timeout elapses, then lets probes through.
type CircuitBreaker struct {
	mu              sync.Mutex
	state           breakerState
	failureCount    int
	lastFailureTime time.Time

	maxFailures int
	timeout     time.Duration
}

func NewCircuitBreaker(maxFailures int, timeout time.Duration) *CircuitBreaker {
	if maxFailures <= 0 {
		maxFailures = 5
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CircuitBreaker{
		state:       breakerClosed,
		maxFailures: maxFailures,
		timeout:     timeout,
	}
}

func (cb *CircuitBreaker) Execute(fn func() error) error {
	if !cb.allow() {
		return ErrCacheDown
	}

	if err := fn(); err != nil {
		cb.recordFailure()
		return err
	}

	cb.recordSuccess()
	return nil
}

func (cb *CircuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case breakerClosed:
		return true
	case breakerOpen:
		if time.Since(cb.lastFailureTime) >= cb.timeout {
			cb.state = breakerHalfOpen
			return true
		}
		return false
	default: // half-open: single probe at a time is fine for this workload
		return true
	}
}

func (cb *CircuitBreaker) recordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++
	cb.lastFailureTime = time.Now()
	if cb.state == breakerHalfOpen || cb.failureCount >= cb.maxFailures {
		cb.state = breakerOpen
	}
}

func (cb *CircuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount = 0
	cb.state = breakerClosed
}
