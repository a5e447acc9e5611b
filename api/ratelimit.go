package api

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/apiconf/ndu/internal/log"
)

const (
	limiterSweepEvery = 5 * time.Minute
	limiterIdleAfter  = 10 * time.Minute
)

// rateLimiter hands each client IP its own token bucket. Idle buckets are
// swept opportunistically from allow, so no background goroutine is needed.
type rateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	limit     rate.Limit
	burst     int
	lastSweep time.Time
}

type bucket struct {
	tokens *rate.Limiter
	seen   time.Time
}

// newRateLimiter creates a limiter refilling r tokens per second with the
// given burst per IP.
func newRateLimiter(r float64, burst int) *rateLimiter {
	return &rateLimiter{
		buckets:   make(map[string]*bucket),
		limit:     rate.Limit(r),
		burst:     burst,
		lastSweep: time.Now(),
	}
}

// allow reports whether a request from ip may proceed.
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.sweep(now)

	b := rl.buckets[ip]
	if b == nil {
		b = &bucket{tokens: rate.NewLimiter(rl.limit, rl.burst)}
		rl.buckets[ip] = b
	}
	b.seen = now
	return b.tokens.Allow()
}

// sweep drops buckets for IPs not seen recently. Caller holds mu.
func (rl *rateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < limiterSweepEvery {
		return
	}
	for ip, b := range rl.buckets {
		if now.Sub(b.seen) > limiterIdleAfter {
			delete(rl.buckets, ip)
		}
	}
	rl.lastSweep = now
}

// rateLimitMiddleware rejects requests from IPs that exhausted their tokens.
func rateLimitMiddleware(rl *rateLimiter, trustProxy bool, logger log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, trustProxy)
			if !rl.allow(ip) {
				logger.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path, "method", r.Method)
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "too many requests", logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP picks the limiter key for a request. Proxy headers are honored
// only when trustProxy is set, and only when they parse as real IPs, so a
// crafted header can't mint fresh buckets. Otherwise the key is RemoteAddr.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		for _, candidate := range proxyHops(r) {
			if ip := net.ParseIP(candidate); ip != nil {
				return ip.String()
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// proxyHops returns the client addresses a reverse proxy claims, in
// preference order: X-Real-IP, then the first X-Forwarded-For entry.
func proxyHops(r *http.Request) []string {
	var hops []string
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		hops = append(hops, strings.TrimSpace(xri))
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		hops = append(hops, strings.TrimSpace(first))
	}
	return hops
}
