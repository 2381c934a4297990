package http

import "time"

// SetClock replaces the limiter's time source.
func (c *ClientLimiter) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Clients returns the number of clients currently tracked.
func (c *ClientLimiter) Clients() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clients)
}
