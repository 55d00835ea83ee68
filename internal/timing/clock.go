package timing

import (
	"sync"
	"time"
)

// Clock blocks the caller for a duration
type Clock interface {
	Sleep(d time.Duration)
}

// RealClock sleeps on the wall clock
type RealClock struct{}

func (RealClock) Sleep(d time.Duration) { time.Sleep(d) }

// ManualClock returns immediately and accumulates the requested time.
// Driving a transmission through it costs nothing, which keeps tests fast.
type ManualClock struct {
	mu      sync.Mutex
	elapsed time.Duration
	sleeps  []time.Duration
}

func (c *ManualClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.elapsed += d
	c.sleeps = append(c.sleeps, d)
}

// Elapsed returns the total time slept
func (c *ManualClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

// Sleeps returns every individual sleep in call order
func (c *ManualClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}
