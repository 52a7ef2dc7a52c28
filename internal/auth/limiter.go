package auth

import (
	"sync"

	"golang.org/x/time/rate"
)

// loginLimiter throttles login attempts per email address to slow down
// brute-force guessing. Entries are never evicted; the portal's user count
// keeps the map small.
type loginLimiter struct {
	mu       sync.Mutex
	perEmail map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newLoginLimiter(perMinute, burst int) *loginLimiter {
	return &loginLimiter{
		perEmail: make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
	}
}

func (l *loginLimiter) allow(email string) bool {
	l.mu.Lock()
	lim, ok := l.perEmail[email]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.perEmail[email] = lim
	}
	l.mu.Unlock()

	return lim.Allow()
}
