// Package breaker provides a circuit breaker for outbound dependencies.
// This is part of the platform layer and contains no business logic.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrOpen is returned when the breaker short-circuits a call without
// invoking the wrapped function.
var ErrOpen = errors.New("circuit breaker is open")

// State is the breaker's position in its state machine.
type State int

const (
	// StateClosed lets calls through and records their outcomes.
	StateClosed State = iota
	// StateOpen fails calls fast until the cooldown elapses.
	StateOpen
	// StateHalfOpen lets a bounded number of probe calls through.
	StateHalfOpen
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Config tunes the breaker's failure detection and recovery.
type Config struct {
	// WindowSize is the number of recent call outcomes kept while closed.
	WindowSize int
	// MinCalls is the minimum number of recorded outcomes before the
	// failure rate is evaluated.
	MinCalls int
	// FailureRate is the ratio of failures in the window that trips the
	// breaker open, in the range (0, 1].
	FailureRate float64
	// Cooldown is how long the breaker stays open before probing.
	Cooldown time.Duration
	// HalfOpenMax is the number of consecutive probe successes required to
	// close, and the cap on concurrent probes while half-open.
	HalfOpenMax int
}

func (c Config) withDefaults() Config {
	if c.WindowSize <= 0 {
		c.WindowSize = 10
	}
	if c.MinCalls <= 0 {
		c.MinCalls = 5
	}
	if c.FailureRate <= 0 || c.FailureRate > 1 {
		c.FailureRate = 0.5
	}
	if c.Cooldown <= 0 {
		c.Cooldown = 30 * time.Second
	}
	if c.HalfOpenMax <= 0 {
		c.HalfOpenMax = 2
	}
	return c
}

// Breaker is a closed/open/half-open state machine shared process-wide by all
// callers of one logical dependency. It is safe for concurrent use.
type Breaker struct {
	name string
	cfg  Config

	mu               sync.Mutex
	state            State
	window           []bool // true marks a failure
	windowIdx        int
	windowCount      int
	windowFails      int
	openedAt         time.Time
	halfOpenInFlight int
	halfOpenSuccess  int

	now           func() time.Time
	onStateChange func(name string, from, to State)
}

// New creates a breaker for the named dependency.
func New(name string, cfg Config) *Breaker {
	cfg = cfg.withDefaults()
	return &Breaker{
		name:   name,
		cfg:    cfg,
		state:  StateClosed,
		window: make([]bool, cfg.WindowSize),
		now:    time.Now,
	}
}

// Name returns the logical dependency name.
func (b *Breaker) Name() string {
	return b.name
}

// OnStateChange registers a hook invoked synchronously on every transition.
// The hook runs under the breaker's lock and must not call back into the
// breaker.
func (b *Breaker) OnStateChange(fn func(name string, from, to State)) {
	b.mu.Lock()
	b.onStateChange = fn
	b.mu.Unlock()
}

// State reports the current state, applying any due open-to-half-open
// transition first.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.cfg.Cooldown {
		return StateHalfOpen
	}
	return b.state
}

// Execute runs fn through the breaker. When the breaker is open (or the
// half-open probe budget is exhausted) fn is not invoked and ErrOpen is
// returned. Any error from fn counts as a failure.
func (b *Breaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := b.allow(); err != nil {
		return err
	}

	err := fn(ctx)
	b.record(err == nil)
	return err
}

func (b *Breaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return nil
	case StateOpen:
		if b.now().Sub(b.openedAt) < b.cfg.Cooldown {
			return ErrOpen
		}
		b.transition(StateHalfOpen)
		fallthrough
	case StateHalfOpen:
		if b.halfOpenInFlight >= b.cfg.HalfOpenMax {
			return ErrOpen
		}
		b.halfOpenInFlight++
		return nil
	default:
		return nil
	}
}

func (b *Breaker) record(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.push(!success)
		if b.windowCount >= b.cfg.MinCalls {
			rate := float64(b.windowFails) / float64(b.windowCount)
			if rate >= b.cfg.FailureRate {
				b.trip()
			}
		}
	case StateHalfOpen:
		b.halfOpenInFlight--
		if !success {
			b.trip()
			return
		}
		b.halfOpenSuccess++
		if b.halfOpenSuccess >= b.cfg.HalfOpenMax {
			b.reset()
			b.transition(StateClosed)
		}
	case StateOpen:
		// A call admitted before the trip finished late; its outcome no
		// longer affects the open state.
	}
}

// trip moves to open and starts the cooldown. Caller holds the lock.
func (b *Breaker) trip() {
	b.openedAt = b.now()
	b.halfOpenInFlight = 0
	b.halfOpenSuccess = 0
	b.transition(StateOpen)
}

// reset clears the rolling window. Caller holds the lock.
func (b *Breaker) reset() {
	for i := range b.window {
		b.window[i] = false
	}
	b.windowIdx = 0
	b.windowCount = 0
	b.windowFails = 0
	b.halfOpenInFlight = 0
	b.halfOpenSuccess = 0
}

// push records one outcome in the ring buffer. Caller holds the lock.
func (b *Breaker) push(failure bool) {
	if b.windowCount == len(b.window) {
		if b.window[b.windowIdx] {
			b.windowFails--
		}
	} else {
		b.windowCount++
	}
	b.window[b.windowIdx] = failure
	if failure {
		b.windowFails++
	}
	b.windowIdx = (b.windowIdx + 1) % len(b.window)
}

// transition changes state and fires the hook. Caller holds the lock.
func (b *Breaker) transition(to State) {
	from := b.state
	if from == to {
		return
	}
	b.state = to

	if hook := b.onStateChange; hook != nil {
		hook(b.name, from, to)
	}
}
