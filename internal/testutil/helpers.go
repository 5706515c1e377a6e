package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

// TestContext creates a context with timeout for tests
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// TestLogger returns a debug-level slog logger that writes through t.Log
func TestLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t: t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// FixedClock is a settable clock.Clock
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock stopped at now
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

// Now returns the current fake time
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to now
func (c *FixedClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Advance moves the clock forward by d
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SequenceRandom replays a fixed sequence of draws, cycling when exhausted. Each
// value is reduced modulo n so one sequence can serve draws of any range.
type SequenceRandom struct {
	mu    sync.Mutex
	seq   []int
	next  int
	calls int
}

// NewSequenceRandom creates a SequenceRandom; an empty sequence always yields 0
func NewSequenceRandom(seq ...int) *SequenceRandom {
	return &SequenceRandom{seq: seq}
}

// Intn returns the next value of the sequence modulo n
func (r *SequenceRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls++
	if len(r.seq) == 0 {
		return 0
	}
	v := r.seq[r.next%len(r.seq)]
	r.next++
	return v % n
}

// Calls returns how many draws were made
func (r *SequenceRandom) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// FailingStore is a kv store whose every operation returns Err
type FailingStore struct {
	Err error
}

func (s FailingStore) Get(context.Context, string) (string, error) { return "", s.Err }

func (s FailingStore) Set(context.Context, string, string) error { return s.Err }

func (s FailingStore) Remove(context.Context, string) error { return s.Err }

func (s FailingStore) Close() error { return nil }
