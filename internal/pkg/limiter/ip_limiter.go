/*
Package limiter rate-limits requests per client IP with token buckets (rate.Limiter).

Idle buckets are swept periodically so the map does not grow with every address
that ever connected.
*/
package limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"chatroom/internal/pkg/errs"
	"chatroom/internal/pkg/logx"
	"chatroom/internal/pkg/resp"
)

const cleanupInterval = 3 * time.Minute

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	// name identifies the limiter in logs.
	name string

	// mu protects limits.
	mu sync.RWMutex

	// limits maps client IP to its bucket.
	limits map[string]*rate.Limiter

	// r is the refill rate in events per second.
	r rate.Limit

	// b is the bucket size.
	b int
}

// NewIPRateLimiter creates a limiter with refill rate r and burst b and starts its sweeper.
func NewIPRateLimiter(name string, r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		name:   name,
		limits: make(map[string]*rate.Limiter),
		r:      r,
		b:      b,
	}

	go i.cleanUpVisitors()

	return i
}

// GetLimiter returns the bucket for ip, creating it on first use.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.RLock()
	limiter, exists := i.limits[ip]
	i.mu.RUnlock()

	if exists {
		return limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	limiter, exists = i.limits[ip]
	if !exists {
		limiter = rate.NewLimiter(i.r, i.b)
		i.limits[ip] = limiter
	}

	return limiter
}

// Allow consumes one token from the bucket of the request's client IP.
func (i *IPRateLimiter) Allow(r *http.Request) bool {
	return i.GetLimiter(ClientIP(r)).Allow()
}

// cleanUpVisitors drops buckets that have refilled completely, i.e. idle clients.
func (i *IPRateLimiter) cleanUpVisitors() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		i.mu.Lock()
		removed := 0
		now := time.Now()
		for ip, limiter := range i.limits {
			if limiter.TokensAt(now) >= float64(limiter.Burst()) {
				delete(i.limits, ip)
				removed++
			}
		}
		remaining := len(i.limits)
		i.mu.Unlock()

		logx.Debug("Rate limiter cleanup finished",
			"limiter", i.name,
			"removed", removed,
			"remaining", remaining,
		)
	}
}

// Middleware answers 429 with ErrRateLimitExceeded once the client's bucket is empty.
func (i *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !i.Allow(r) {
			logx.Warn("Request rejected: rate limit exceeded.",
				"limiter", i.name,
				"remote_ip", logx.AnonymizeIP(r.RemoteAddr),
			)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ClientIP extracts the host part of r.RemoteAddr. chi's RealIP middleware has already
// replaced RemoteAddr with the forwarded address when one was present.
func ClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	if ip == "" {
		ip = "unknown_ip"
	}

	return ip
}
