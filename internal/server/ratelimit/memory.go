package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count int
	reset time.Time
}

// MemoryLimiter keeps counters in process memory.
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	windows map[string]*window
	now     func() time.Time
}

func NewMemoryLimiter(limit int, period time.Duration) *MemoryLimiter {
	return &MemoryLimiter{limit: limit, period: period, windows: map[string]*window{}, now: time.Now}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || !now.Before(w.reset) {
		w = &window{reset: now.Add(l.period)}
		l.windows[key] = w
		l.sweep(now)
	}
	w.count++
	return w.count <= l.limit, nil
}

// sweep drops expired windows so abandoned keys do not accumulate.
func (l *MemoryLimiter) sweep(now time.Time) {
	for k, w := range l.windows {
		if !now.Before(w.reset) {
			delete(l.windows, k)
		}
	}
}
