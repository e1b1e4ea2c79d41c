package breaker

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errBoom = errors.New("boom")

func newTestBreaker() (*Breaker, *time.Time) {
	b := New("clientService", Config{
		WindowSize:  10,
		MinCalls:    4,
		FailureRate: 0.5,
		Cooldown:    30 * time.Second,
		HalfOpenMax: 2,
	})
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := &now
	b.now = func() time.Time { return *clock }
	return b, clock
}

func fail(ctx context.Context) error    { return errBoom }
func succeed(ctx context.Context) error { return nil }

func TestBreakerStaysClosedBelowMinCalls(t *testing.T) {
	b, _ := newTestBreaker()

	for i := 0; i < 3; i++ {
		if err := b.Execute(context.Background(), fail); !errors.Is(err, errBoom) {
			t.Fatalf("expected wrapped error, got %v", err)
		}
	}

	if got := b.State(); got != StateClosed {
		t.Fatalf("expected closed below min calls, got %s", got)
	}
}

func TestBreakerTripsOpenAndFailsFast(t *testing.T) {
	b, _ := newTestBreaker()

	for i := 0; i < 4; i++ {
		_ = b.Execute(context.Background(), fail)
	}

	if got := b.State(); got != StateOpen {
		t.Fatalf("expected open after failure rate exceeded, got %s", got)
	}

	invoked := false
	err := b.Execute(context.Background(), func(ctx context.Context) error {
		invoked = true
		return nil
	})
	if !errors.Is(err, ErrOpen) {
		t.Fatalf("expected ErrOpen, got %v", err)
	}
	if invoked {
		t.Fatal("open breaker must not invoke the wrapped function")
	}
}

func TestBreakerHalfOpensAfterCooldownAndCloses(t *testing.T) {
	b, clock := newTestBreaker()

	for i := 0; i < 4; i++ {
		_ = b.Execute(context.Background(), fail)
	}
	if got := b.State(); got != StateOpen {
		t.Fatalf("expected open, got %s", got)
	}

	*clock = clock.Add(31 * time.Second)

	if got := b.State(); got != StateHalfOpen {
		t.Fatalf("expected half-open after cooldown, got %s", got)
	}

	// Two consecutive probe successes close the breaker.
	if err := b.Execute(context.Background(), succeed); err != nil {
		t.Fatalf("probe should pass through, got %v", err)
	}
	if err := b.Execute(context.Background(), succeed); err != nil {
		t.Fatalf("probe should pass through, got %v", err)
	}

	if got := b.State(); got != StateClosed {
		t.Fatalf("expected closed after probes, got %s", got)
	}
}

func TestBreakerReopensOnProbeFailure(t *testing.T) {
	b, clock := newTestBreaker()

	for i := 0; i < 4; i++ {
		_ = b.Execute(context.Background(), fail)
	}
	*clock = clock.Add(31 * time.Second)

	if err := b.Execute(context.Background(), fail); !errors.Is(err, errBoom) {
		t.Fatalf("probe should pass through, got %v", err)
	}

	if got := b.State(); got != StateOpen {
		t.Fatalf("expected reopened after failed probe, got %s", got)
	}

	// Fresh cooldown applies from the failed probe.
	if err := b.Execute(context.Background(), succeed); !errors.Is(err, ErrOpen) {
		t.Fatalf("expected ErrOpen during fresh cooldown, got %v", err)
	}
}

func TestBreakerRecoversWhenFailuresAgeOut(t *testing.T) {
	b, _ := newTestBreaker()

	// A failure followed by a run of successes keeps the rate under the
	// threshold as the window rolls.
	_ = b.Execute(context.Background(), fail)
	for i := 0; i < 10; i++ {
		if err := b.Execute(context.Background(), succeed); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := b.State(); got != StateClosed {
		t.Fatalf("expected closed, got %s", got)
	}
}

func TestBreakerStateChangeHook(t *testing.T) {
	b, clock := newTestBreaker()

	var transitions []string
	b.OnStateChange(func(name string, from, to State) {
		transitions = append(transitions, from.String()+">"+to.String())
	})

	for i := 0; i < 4; i++ {
		_ = b.Execute(context.Background(), fail)
	}
	*clock = clock.Add(31 * time.Second)
	_ = b.Execute(context.Background(), succeed)
	_ = b.Execute(context.Background(), succeed)

	want := []string{"closed>open", "open>half-open", "half-open>closed"}
	if len(transitions) != len(want) {
		t.Fatalf("expected %d transitions, got %v", len(want), transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("transition %d: expected %s, got %s", i, want[i], transitions[i])
		}
	}
}
