package clockfake

import (
	"sort"
	"sync"
	"time"

	"github.com/jrsteele09/podmixer-console/session"
)

// Clock is a simulated clock. Time only moves on Advance, which fires due
// timers synchronously in deadline order.
type Clock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*Timer
}

var _ session.Clock = (*Clock)(nil)

// NewClock creates a simulated clock starting at now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Timer is a timer scheduled on a simulated Clock.
type Timer struct {
	clock    *Clock
	deadline time.Time
	fn       func()
	fired    bool
	stopped  bool
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) AfterFunc(d time.Duration, f func()) session.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &Timer{clock: c, deadline: c.now.Add(d), fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d and runs every timer whose deadline
// has been reached.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	due := make([]*Timer, 0)
	for _, t := range c.timers {
		if !t.fired && !t.stopped && !t.deadline.After(now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].deadline.Before(due[j].deadline) })
	for _, t := range due {
		t.fn()
	}
}

// Pending returns the time left on every timer that has neither fired nor
// been stopped.
func (c *Clock) Pending() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	pending := make([]time.Duration, 0)
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			pending = append(pending, t.deadline.Sub(c.now))
		}
	}
	return pending
}

func (t *Timer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
