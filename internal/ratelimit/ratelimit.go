package ratelimit

import (
	"sync"
	"time"
)

// Limiter counts attempts in fixed windows keyed by caller-supplied strings
// (e.g. "checkout_ip_103.4.145.1"). It is an in-process, advisory guard:
// exceeding a cap makes Allow return false, nothing more.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

type window struct {
	start time.Time
	span  time.Duration
	count int
}

// New creates an empty Limiter using the wall clock.
func New() *Limiter {
	return &Limiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// NewWithClock creates a Limiter with an injectable clock for tests.
func NewWithClock(now func() time.Time) *Limiter {
	return &Limiter{
		windows: make(map[string]*window),
		now:     now,
	}
}

// Allow records one attempt for key and reports whether it stays within
// limit attempts per span. The check and the increment happen under a single
// lock, so two concurrent requests can never both slip under the cap.
func (l *Limiter) Allow(key string, limit int, span time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= w.span {
		if len(l.windows) >= pruneThreshold {
			l.prune(now)
		}
		l.windows[key] = &window{start: now, span: span, count: 1}
		return limit >= 1
	}
	if w.count >= limit {
		return false
	}
	w.count++
	return true
}

// pruneThreshold caps how many live windows accumulate before expired ones
// are swept out.
const pruneThreshold = 4096

func (l *Limiter) prune(now time.Time) {
	for key, w := range l.windows {
		if now.Sub(w.start) >= w.span {
			delete(l.windows, key)
		}
	}
}
