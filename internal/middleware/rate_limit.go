package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/voltshare/rental-backend/internal/api/httpx"
)

type bucket struct {
	tokens float64
	last   time.Time
}

// RateLimit applies a per-client token bucket keyed by remote IP. rps is
// both refill rate and burst.
func RateLimit(rps int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	var (
		mu      sync.Mutex
		buckets = map[string]*bucket{}
	)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			mu.Lock()
			b, ok := buckets[host]
			now := time.Now()
			if !ok {
				b = &bucket{tokens: float64(rps), last: now}
				buckets[host] = b
			}
			b.tokens += now.Sub(b.last).Seconds() * float64(rps)
			if b.tokens > float64(rps) {
				b.tokens = float64(rps)
			}
			b.last = now
			allowed := b.tokens >= 1
			if allowed {
				b.tokens--
			}
			mu.Unlock()

			if !allowed {
				httpx.WriteError(w, http.StatusTooManyRequests, "rate_limited", "too many requests", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
