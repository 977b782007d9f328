package client

import (
	"sync"
	"time"
)

const DefaultCooldown = 5 * time.Second

// CooldownTracker is the dashboard client's pre-flight throttle. It suppresses
// a submission when the same customer was attempted within the cooldown,
// saving a round trip the server would reject anyway.
//
// The tracker is advisory only. The server-side admission guard remains the
// sole correctness boundary; nothing here enforces uniqueness.
type CooldownTracker struct {
	mu          sync.Mutex
	cooldown    time.Duration
	lastAttempt map[string]time.Time
}

func NewCooldownTracker(cooldown time.Duration) *CooldownTracker {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &CooldownTracker{
		cooldown:    cooldown,
		lastAttempt: make(map[string]time.Time),
	}
}

// ShouldBlock reports whether a submission for the customer should be held
// back because the previous attempt was less than the cooldown ago.
func (c *CooldownTracker) ShouldBlock(customerID string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	last, ok := c.lastAttempt[customerID]
	if !ok {
		return false
	}

	return now.Sub(last) < c.cooldown
}

// Record stores the attempt timestamp for the customer.
func (c *CooldownTracker) Record(customerID string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastAttempt[customerID] = now
}
