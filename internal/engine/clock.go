// Package engine implements the shared real-time game core used by every
// arcade variant: the tick clock, entity records, grid and free movement
// policies, collision resolution, AI strategies, and the session state
// machine. It is pure logic with no platform dependencies, so the same code
// drives the 2D cabinet games and the first-person family.
package engine

import "time"

// DefaultMaxDelta caps the per-tick delta so a stalled host (suspended
// terminal, SSH hiccup) cannot produce a single huge step that tunnels
// entities through walls or paddles.
const DefaultMaxDelta = 0.25

// Clock turns wall-clock tick timestamps into bounded delta-time steps.
// It is the single loop driver for all game variants: the platform calls
// Tick once per frame and feeds the returned delta into the game update.
type Clock struct {
	MaxDelta float64 // Maximum delta in seconds returned by Tick

	last    time.Time
	running bool
}

// NewClock returns a stopped clock with the default delta clamp.
func NewClock() *Clock {
	return &Clock{MaxDelta: DefaultMaxDelta}
}

// Start begins timing. The first Tick after Start returns zero so games
// never see the gap while the clock was stopped.
func (c *Clock) Start() {
	c.running = true
	c.last = time.Time{}
}

// Stop halts the clock. Safe to call repeatedly.
func (c *Clock) Stop() {
	c.running = false
	c.last = time.Time{}
}

// Running reports whether the clock is started.
func (c *Clock) Running() bool {
	return c.running
}

// Tick computes the elapsed time since the previous tick in seconds,
// clamped to MaxDelta. Returns 0 if the clock is stopped or this is the
// first tick after Start.
func (c *Clock) Tick(now time.Time) float64 {
	if !c.running {
		return 0
	}
	if c.last.IsZero() {
		c.last = now
		return 0
	}

	dt := now.Sub(c.last).Seconds()
	c.last = now

	if dt < 0 {
		return 0
	}
	if c.MaxDelta > 0 && dt > c.MaxDelta {
		dt = c.MaxDelta
	}
	return dt
}
