package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// window holds the request counter and expiry instant for one token identity.
type window struct {
	count   int
	resetAt time.Time
}

// FixedWindowLimiter implements RateLimiter with a fixed-window counter per
// token identity. The window is fixed, not sliding: a burst straddling a
// window boundary can admit up to 2x the configured rate over a short
// interval. Counters live in process memory and are evicted after their
// window elapses.
type FixedWindowLimiter struct {
	mu          sync.Mutex
	windows     map[uuid.UUID]*window
	maxRequests int
	windowSize  time.Duration
	done        chan struct{}
	closeOnce   sync.Once

	// now is swappable for tests.
	now func() time.Time
}

// NewFixedWindowLimiter creates a limiter allowing maxRequests per token per
// windowSize and starts a background goroutine that evicts elapsed windows.
// Call Close to stop the eviction goroutine.
func NewFixedWindowLimiter(maxRequests int, windowSize time.Duration) *FixedWindowLimiter {
	l := &FixedWindowLimiter{
		windows:     make(map[uuid.UUID]*window),
		maxRequests: maxRequests,
		windowSize:  windowSize,
		done:        make(chan struct{}),
		now:         time.Now,
	}

	go l.evictLoop()

	return l
}

// Allow checks and increments the window counter for the token identity.
// On the first request for a token, or after its window has elapsed, a fresh
// window starts with counter 1. Once the counter reaches the maximum the
// request is rejected without further incrementing.
func (l *FixedWindowLimiter) Allow(tokenID uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	w, ok := l.windows[tokenID]
	if !ok || !now.Before(w.resetAt) {
		l.windows[tokenID] = &window{count: 1, resetAt: now.Add(l.windowSize)}
		return true
	}

	if w.count >= l.maxRequests {
		return false
	}

	w.count++
	return true
}

// WindowSize returns the configured window duration, used by the HTTP layer
// as the Retry-After hint on rejected requests.
func (l *FixedWindowLimiter) WindowSize() time.Duration {
	return l.windowSize
}

// Close stops the eviction goroutine. Safe to call more than once.
func (l *FixedWindowLimiter) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
}

// evictLoop periodically removes windows that have elapsed, preventing
// unbounded memory growth from token identity churn.
func (l *FixedWindowLimiter) evictLoop() {
	ticker := time.NewTicker(l.windowSize)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.evictElapsed()
		}
	}
}

// evictElapsed removes all windows whose expiry instant has passed.
func (l *FixedWindowLimiter) evictElapsed() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for tokenID, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, tokenID)
		}
	}
}
