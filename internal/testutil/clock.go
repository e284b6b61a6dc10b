// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"sync/atomic"
	"time"
)

// ReferenceTime is where a FakeClock created from the zero time starts.
var ReferenceTime = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// FakeClock is a time source that only moves when told to. It satisfies
// guid.Clock and is safe for concurrent use.
type FakeClock struct {
	nanos atomic.Int64
	step  atomic.Int64
}

// NewFakeClock returns a clock reading initial, or ReferenceTime when
// initial is zero.
func NewFakeClock(initial time.Time) *FakeClock {
	if initial.IsZero() {
		initial = ReferenceTime
	}
	c := &FakeClock{}
	c.nanos.Store(initial.UnixNano())
	return c
}

// Now returns the current reading, then moves the clock forward by the
// step set with AutoAdvance.
func (c *FakeClock) Now() time.Time {
	step := c.step.Load()
	return time.Unix(0, c.nanos.Add(step)-step).UTC()
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) { c.nanos.Add(int64(d)) }

// Set jumps the clock to t.
func (c *FakeClock) Set(t time.Time) { c.nanos.Store(t.UnixNano()) }

// AutoAdvance makes every later call to Now move the clock by d, so that
// consecutive readings differ. A zero d turns it off.
func (c *FakeClock) AutoAdvance(d time.Duration) { c.step.Store(int64(d)) }
