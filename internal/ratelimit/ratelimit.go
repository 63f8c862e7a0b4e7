package ratelimit

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrQuotaExceeded is returned by Use once a provider's daily budget is spent.
var ErrQuotaExceeded = errors.New("request quota exceeded")

// Quota caps paid upstream calls per provider over a rolling day.
type Quota struct {
	mu        sync.Mutex
	limits    map[string]int
	used      map[string]int
	resetTime time.Time
	window    time.Duration
	now       func() time.Time
}

// NewQuota creates a quota with a per-provider daily limit; a limit of 0 or
// a provider absent from limits is unlimited.
func NewQuota(limits map[string]int) *Quota {
	return newQuota(limits, 24*time.Hour, time.Now)
}

func newQuota(limits map[string]int, window time.Duration, now func() time.Time) *Quota {
	copied := make(map[string]int, len(limits))
	for k, v := range limits {
		copied[k] = v
	}
	return &Quota{
		limits:    copied,
		used:      make(map[string]int),
		resetTime: now().Add(window),
		window:    window,
		now:       now,
	}
}

// Use consumes one request for provider.
func (q *Quota) Use(provider string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.checkReset()
	if !q.hasBudget(provider) {
		return fmt.Errorf("%s: %w (%d/%d)", provider, ErrQuotaExceeded, q.used[provider], q.limits[provider])
	}
	q.used[provider]++

	slog.Debug("quota used", "provider", provider, "used", q.used[provider], "limit", q.limits[provider])
	return nil
}

// Stats returns used and limit counts per provider.
func (q *Quota) Stats() map[string]interface{} {
	q.mu.Lock()
	defer q.mu.Unlock()

	stats := map[string]interface{}{"reset_time": q.resetTime}
	for p, limit := range q.limits {
		stats[p+"_used"] = q.used[p]
		stats[p+"_limit"] = limit
	}
	return stats
}

func (q *Quota) hasBudget(provider string) bool {
	limit := q.limits[provider]
	return limit <= 0 || q.used[provider] < limit
}

// checkReset clears counters once the window has passed.
func (q *Quota) checkReset() {
	if q.now().After(q.resetTime) {
		slog.Info("resetting request quota", "window", q.window)
		q.used = make(map[string]int)
		q.resetTime = q.now().Add(q.window)
	}
}
