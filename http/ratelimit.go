package http

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Bounds on how often the limiter map is swept.
const (
	minIdle = time.Second
	maxIdle = 24 * time.Hour
)

// ClientLimiter provides per-client rate limiting using token buckets.
// Each client gets its own limiter, so one busy client cannot exhaust the
// budget of another.
//
// A client idle long enough for its bucket to refill completely is
// indistinguishable from a new client, so its limiter is dropped on the next
// sweep.
type ClientLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientEntry
	rps       float64
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientLimiter creates a ClientLimiter allowing rps requests per second
// per client with the given burst. A burst below 1 is raised to 1.
func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	if burst < 1 {
		burst = 1
	}
	idle := maxIdle
	if refill := float64(burst) / rps; refill < maxIdle.Seconds() {
		idle = max(time.Duration(refill*float64(time.Second)), minIdle)
	}
	return &ClientLimiter{
		clients: make(map[string]*clientEntry),
		rps:     rps,
		burst:   burst,
		idle:    idle,
		now:     time.Now,
	}
}

// Allow reports whether the client may make a request now.
func (c *ClientLimiter) Allow(client string) bool {
	c.mu.Lock()
	now := c.now()
	if now.Sub(c.lastSweep) >= c.idle {
		c.sweep(now)
	}
	e, ok := c.clients[client]
	if !ok {
		e = &clientEntry{limiter: rate.NewLimiter(rate.Limit(c.rps), c.burst)}
		c.clients[client] = e
	}
	e.lastSeen = now
	c.mu.Unlock()

	return e.limiter.AllowN(now, 1)
}

// sweep drops clients idle for at least the refill period. Callers hold mu.
func (c *ClientLimiter) sweep(now time.Time) {
	for client, e := range c.clients {
		if now.Sub(e.lastSeen) >= c.idle {
			delete(c.clients, client)
		}
	}
	c.lastSweep = now
}
