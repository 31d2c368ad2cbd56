// Package rate provides the fixed-window request limiter used by the serve
// mode to keep one client from monopolizing the upstream item source.
package rate

import (
	"sync"
	"time"
)

type Limiter interface {
	Allow(key string, limit int, window time.Duration) (bool, time.Duration)
}

type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count   int
	resetAt time.Time
	span    time.Duration
}

func NewMemory() *MemoryLimiter {
	return &MemoryLimiter{windows: make(map[string]*window)}
}

// Allow reports whether key may proceed under limit requests per window,
// along with the time until the window resets.
func (m *MemoryLimiter) Allow(key string, limit int, span time.Duration) (bool, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	w, ok := m.windows[key]
	if !ok || now.After(w.resetAt) || w.span != span {
		w = &window{resetAt: now.Add(span), span: span}
		m.windows[key] = w
	}

	if w.count >= limit {
		return false, time.Until(w.resetAt)
	}

	w.count++
	return true, time.Until(w.resetAt)
}
