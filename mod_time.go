package modeler

import (
	"time"
)

// maxFrameDt caps the step reported after a stall (window drag, debugger).
const maxFrameDt = 250 * time.Millisecond

// Clock measures the time between frames.
type Clock struct {
	Time time.Time
	Dt   time.Duration
}

func NewClock(now time.Time) *Clock {
	return &Clock{Time: now}
}

// Tick advances the clock to now and returns the frame step in seconds.
func (c *Clock) Tick(now time.Time) float32 {
	c.Dt = now.Sub(c.Time)
	if c.Dt < 0 {
		c.Dt = 0
	}
	if c.Dt > maxFrameDt {
		c.Dt = maxFrameDt
	}
	c.Time = now
	return float32(c.Dt.Seconds())
}
