package testutil

import (
	"sync"
	"time"
)

// Epoch is the default start time for FixedClock.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// FixedClock is a wall clock that advances by a fixed step on every read.
//
// Thread-safety: all methods are safe for concurrent use.
type FixedClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

// NewFixedClock creates a clock whose first Now returns start.
// A zero start means Epoch; a zero step means one second.
func NewFixedClock(start time.Time, step time.Duration) *FixedClock {
	if start.IsZero() {
		start = Epoch
	}
	if step == 0 {
		step = time.Second
	}
	return &FixedClock{next: start.UTC(), step: step}
}

// Now returns the current time and advances the clock by one step.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(c.step)
	return now
}
