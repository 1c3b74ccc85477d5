package fx

import (
	"math"
	"time"

	"github.com/decker502/folio/pkg/frame"
)

// Counter counts a stat up from zero to its target, one step per frame.
type Counter struct {
	target int
	step   float64

	current float64
	value   int

	sched   frame.Scheduler
	handle  frame.Handle
	running bool
}

// NewCounter creates a counter reaching target in roughly duration at the
// given frame interval.
func NewCounter(sched frame.Scheduler, target int, duration, frameInterval time.Duration) *Counter {
	steps := 1.0
	if frameInterval > 0 && duration > frameInterval {
		steps = float64(duration) / float64(frameInterval)
	}
	return &Counter{
		target: target,
		step:   float64(target) / steps,
		sched:  sched,
	}
}

// Start restarts the count from zero.
func (c *Counter) Start() {
	c.Stop()
	c.current = 0
	c.value = 0
	c.running = true
	c.update()
}

// Stop cancels a running count, keeping the current value.
func (c *Counter) Stop() {
	if c.handle != 0 {
		c.sched.Cancel(c.handle)
		c.handle = 0
	}
	c.running = false
}

func (c *Counter) update() {
	c.handle = 0
	c.current += c.step
	if c.step > 0 && c.current < float64(c.target) {
		c.value = int(math.Floor(c.current))
		c.handle = c.sched.Request(c.update)
		return
	}
	c.value = c.target
	c.running = false
}

// Value returns the displayed number.
func (c *Counter) Value() int {
	return c.value
}

// Target returns the final number.
func (c *Counter) Target() int {
	return c.target
}

// Running reports whether the count is still in progress.
func (c *Counter) Running() bool {
	return c.running
}
