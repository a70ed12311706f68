package gotest

import (
	"time"

	"github.com/benbjohnson/clock"
)

// ReplayClock reports the time of the last event the Driver handled, so
// durations follow the recorded run rather than the speed of decoding. Until
// an event carrying a time arrives it falls back to the wrapped clock. Timers
// and tickers always come from the wrapped clock.
type ReplayClock struct {
	clock.Clock

	now time.Time
}

// NewReplayClock creates a ReplayClock on top of base.
func NewReplayClock(base clock.Clock) *ReplayClock {
	if base == nil {
		base = clock.New()
	}
	return &ReplayClock{Clock: base}
}

// Set moves the clock to t. A zero t is ignored.
func (c *ReplayClock) Set(t time.Time) {
	if !t.IsZero() {
		c.now = t
	}
}

// Now returns the time of the last event.
func (c *ReplayClock) Now() time.Time {
	if c.now.IsZero() {
		return c.Clock.Now()
	}
	return c.now
}

// Since returns the time elapsed between t and Now.
func (c *ReplayClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}
