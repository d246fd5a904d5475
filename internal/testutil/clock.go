// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"slices"
	"sync"
	"time"
)

type (
	// FakeClock is a manually driven clock satisfying the Clock interfaces of
	// the refresh and ledger packages. Time moves only through Advance and
	// Sleep; Sleep also records the requested duration so tests can assert
	// the delays of a choreography without waiting for them.
	FakeClock struct {
		mu     sync.Mutex
		now    time.Time
		timers []fakeTimer
		slept  []time.Duration
	}

	fakeTimer struct {
		due time.Time
		ch  chan time.Time
	}
)

// NewFakeClock returns a FakeClock reading initial.
func NewFakeClock(initial time.Time) *FakeClock {
	return &FakeClock{now: initial}
}

// Now returns the fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// After returns a channel that receives once the fake time reaches now+d.
// A non-positive d fires immediately.
func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- c.now
		return ch
	}
	c.timers = append(c.timers, fakeTimer{due: c.now.Add(d), ch: ch})
	return ch
}

// Advance moves the fake time forward by d, firing due timers.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advanceLocked(d)
}

// Sleep records d and advances the fake time by it without blocking.
func (c *FakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slept = append(c.slept, d)
	c.advanceLocked(d)
}

// Sleeps returns the durations passed to Sleep, in call order.
func (c *FakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.slept)
}

// BlockUntil waits until at least n After channels are pending.
func (c *FakeClock) BlockUntil(n int) {
	for {
		c.mu.Lock()
		pending := len(c.timers)
		c.mu.Unlock()
		if pending >= n {
			return
		}
		runtime.Gosched()
	}
}

// advanceLocked must be called with mu held.
func (c *FakeClock) advanceLocked(d time.Duration) {
	c.now = c.now.Add(d)
	c.timers = slices.DeleteFunc(c.timers, func(t fakeTimer) bool {
		if t.due.After(c.now) {
			return false
		}
		t.ch <- c.now
		return true
	})
}
