package tintero

import (
	"sync"
	"time"
)

const loginWindow = time.Minute

// loginLimiter rate-limits login attempts per IP address with a
// sliding window. Only failed attempts count against the limit.
type loginLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	max      int
	window   time.Duration
}

func newLoginLimiter(max int, window time.Duration) *loginLimiter {
	l := &loginLimiter{
		attempts: make(map[string][]time.Time),
		max:      max,
		window:   window,
	}
	go l.cleanup()
	return l
}

// Check reports whether the IP is still under the limit. It records
// nothing; call Record on a failed attempt.
func (l *loginLimiter) Check(ip string) bool {
	cutoff := time.Now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.prune(ip, cutoff)
	return len(kept) < l.max
}

// Record registers a failed login attempt for the given IP.
func (l *loginLimiter) Record(ip string) {
	l.mu.Lock()
	l.attempts[ip] = append(l.attempts[ip], time.Now())
	l.mu.Unlock()
}

// prune drops expired attempts for ip and returns what is left.
// Callers must hold mu.
func (l *loginLimiter) prune(ip string, cutoff time.Time) []time.Time {
	hits := l.attempts[ip]
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(l.attempts, ip)
	} else {
		l.attempts[ip] = kept
	}
	return kept
}

func (l *loginLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	for range ticker.C {
		cutoff := time.Now().Add(-l.window)
		l.mu.Lock()
		for ip := range l.attempts {
			l.prune(ip, cutoff)
		}
		l.mu.Unlock()
	}
}
