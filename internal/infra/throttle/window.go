// Package throttle implements a process-local sliding-window limiter for
// authentication attempts. It is a best-effort brake on brute force, not a
// distributed or durable guarantee: restarting the process resets the budget.
package throttle

import (
	"sync"
	"time"

	"singularity/config"
	domainerrors "singularity/internal/domain/errors"
	"singularity/internal/domain/service"
)

// slidingWindow tracks attempt timestamps per client key within a trailing
// window. It is constructed once per process and injected wherever attempts
// must be bounded, so a distributed implementation can replace it without
// touching call sites.
type slidingWindow struct {
	mu          sync.Mutex
	attempts    map[string][]time.Time
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

// NewSlidingWindow is the constructor for the sliding-window throttle.
func NewSlidingWindow(cfg *config.Config) service.LoginThrottle {
	return &slidingWindow{
		attempts:    make(map[string][]time.Time),
		maxAttempts: cfg.Throttle.MaxAttempts,
		window:      cfg.Throttle.Window,
		now:         time.Now,
	}
}

// Check prunes entries older than the window, then either records the
// current attempt and allows it, or rejects without recording when the
// budget is already spent. The single lock makes concurrent checks from the
// same client within the same instant count correctly.
func (t *slidingWindow) Check(clientKey string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	cutoff := now.Add(-t.window)

	recent := t.attempts[clientKey][:0]
	for _, at := range t.attempts[clientKey] {
		if at.After(cutoff) {
			recent = append(recent, at)
		}
	}

	if len(recent) >= t.maxAttempts {
		t.attempts[clientKey] = recent

		return domainerrors.ErrThrottled
	}

	t.attempts[clientKey] = append(recent, now)

	return nil
}
