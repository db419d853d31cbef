package wirescape

import "time"

// Clock is a monotonic elapsed-time source. Elapsed returns seconds since the
// clock started.
type Clock interface {
	Elapsed() float64
}

// WallClock measures real time from the moment it was created.
type WallClock struct {
	start time.Time
}

// NewWallClock starts a clock at the current time.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Elapsed returns the seconds since NewWallClock.
func (c *WallClock) Elapsed() float64 {
	return time.Since(c.start).Seconds()
}

// ManualClock only advances when told to. Scripted runs and tests use it to
// step frames deterministically.
type ManualClock struct {
	T float64
}

// Elapsed returns the accumulated time.
func (c *ManualClock) Elapsed() float64 {
	return c.T
}

// Advance moves the clock forward by dt seconds.
func (c *ManualClock) Advance(dt float64) {
	c.T += dt
}
