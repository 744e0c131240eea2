package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const staleAfter = 10 * time.Minute

type caller struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// perIPLimiter tracks one token bucket per remote address, dropping
// buckets that have been idle for a while.
type perIPLimiter struct {
	mu      sync.Mutex
	callers map[string]*caller
	rps     rate.Limit
	burst   int
}

func newPerIPLimiter(rps float64, burst int) *perIPLimiter {
	l := &perIPLimiter{
		callers: make(map[string]*caller),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
	go l.evictStale()
	return l
}

func (l *perIPLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.callers[ip]
	if !ok {
		c = &caller{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.callers[ip] = c
	}
	c.lastSeen = time.Now()

	return c.limiter.Allow()
}

func (l *perIPLimiter) evictStale() {
	ticker := time.NewTicker(staleAfter)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		for ip, c := range l.callers {
			if time.Since(c.lastSeen) > staleAfter {
				delete(l.callers, ip)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimit limits requests per remote IP. It guards the endpoints that
// do not require authentication: signup and login.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := newPerIPLimiter(rps, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiter.allow(ip) {
				writeJSONError(w, http.StatusTooManyRequests, "too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
