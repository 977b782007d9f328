package services

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultRateLimitWindow = 5 * time.Second
	DefaultRateLimitMax    = 1
	DefaultSweepInterval   = time.Minute
)

// RateLimiterService bounds the rate of delivery-request creation attempts per
// customer inside a sliding window. It is independent of the active-request
// rule: a flood of attempts is throttled even when each one on its own would
// be admissible.
//
// A single mutex guards the map; contention is negligible at the tens of
// concurrent admins this dashboard serves.
type RateLimiterService struct {
	mu       sync.Mutex
	window   time.Duration
	limit    int
	attempts map[string]rateLimitEntry
}

type rateLimitEntry struct {
	windowStart time.Time
	count       int
}

func NewRateLimiterService(limit int, window time.Duration) *RateLimiterService {
	if limit <= 0 {
		limit = DefaultRateLimitMax
	}
	if window <= 0 {
		window = DefaultRateLimitWindow
	}
	return &RateLimiterService{
		window:   window,
		limit:    limit,
		attempts: make(map[string]rateLimitEntry),
	}
}

// Allow records an attempt for the customer and reports whether it stays within
// the limit. An expired entry is reclaimed on lookup, so a customer who waited
// out the window always gets a fresh one.
func (rl *RateLimiterService) Allow(customerID string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.attempts[customerID]
	if !ok || now.Sub(entry.windowStart) >= rl.window {
		rl.attempts[customerID] = rateLimitEntry{windowStart: now, count: 1}
		return true
	}

	if entry.count >= rl.limit {
		return false
	}

	entry.count++
	rl.attempts[customerID] = entry
	return true
}

// Sweep drops every expired entry, bounding memory to customers seen within the
// last window.
func (rl *RateLimiterService) Sweep(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for customerID, entry := range rl.attempts {
		if now.Sub(entry.windowStart) >= rl.window {
			delete(rl.attempts, customerID)
		}
	}
}

type sweepScheduler interface {
	ScheduleJob(job Job, delay time.Duration)
}

// StartSweep schedules a periodic Sweep on the job queue. Each run reschedules
// the next one, so the sweeping stops with the queue.
func (rl *RateLimiterService) StartSweep(jobQueue sweepScheduler, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	var sweep Job
	sweep = func(ctx context.Context) {
		rl.Sweep(time.Now())
		jobQueue.ScheduleJob(sweep, interval)
	}

	jobQueue.ScheduleJob(sweep, interval)
}
