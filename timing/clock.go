// Package timing provides the frame clock and frame pacer used by the
// engine loop.
//
// Both types are plain values owned by a single goroutine. They never read
// the wall clock themselves: every method takes the current instant as an
// argument, so results are a pure function of the instants fed in.
package timing

import "time"

// Capacity is the number of frame intervals kept by a FrameClock.
const Capacity = 100

// FrameClock keeps a rolling average over the last Capacity frame-to-frame
// intervals.
//
// The zero value is ready to use.
type FrameClock struct {
	ring  [Capacity]time.Duration
	head  int
	count int
	sum   time.Duration

	last    time.Time
	hasLast bool
}

// Record registers a frame at instant now.
//
// The first call only establishes the baseline and produces no sample.
// Each later call stores now minus the previous instant, evicting the
// oldest interval once the ring is full.
func (c *FrameClock) Record(now time.Time) {
	if !c.hasLast {
		c.last = now
		c.hasLast = true
		return
	}

	delta := now.Sub(c.last)
	c.last = now

	c.head = (c.head + 1) % Capacity
	c.sum -= c.ring[c.head]
	c.ring[c.head] = delta
	c.sum += delta
	if c.count < Capacity {
		c.count++
	}
}

// Average returns the mean of the recorded intervals.
// It returns false when no interval has been recorded yet.
func (c *FrameClock) Average() (time.Duration, bool) {
	if c.count == 0 {
		return 0, false
	}
	return c.sum / time.Duration(c.count), true
}

// FrameRate returns the frame rate derived from Average, in frames per
// second. It returns false when there is no sample or the average is zero.
func (c *FrameClock) FrameRate() (float64, bool) {
	avg, ok := c.Average()
	if !ok || avg <= 0 {
		return 0, false
	}
	return float64(time.Second) / float64(avg), true
}

// Samples returns the number of intervals currently held.
func (c *FrameClock) Samples() int {
	return c.count
}

// Reset discards all samples and the baseline instant.
func (c *FrameClock) Reset() {
	*c = FrameClock{}
}
