package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// cleanupInterval is how often idle clients are pruned from the map.
const cleanupInterval = time.Minute

// visitor holds the request timestamps for one client IP along with
// the last time it was seen, which drives pruning.
type visitor struct {
	stamps   []time.Time
	lastSeen time.Time
}

// RateLimiter applies a sliding-window cap per client IP. It fronts
// the login endpoint so password guessing gets throttled while normal
// traffic never notices it.
type RateLimiter struct {
	mu      sync.RWMutex
	clients map[string]*visitor
	limit   int
	window  time.Duration

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewRateLimiter allows limit requests per window for each client and
// starts the pruning goroutine. Call Stop on shutdown.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*visitor),
		limit:   limit,
		window:  window,
		stopCh:  make(chan struct{}),
	}

	go rl.prune()

	return rl
}

// Stop ends the pruning goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

func (rl *RateLimiter) prune() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// allow records an attempt for key and reports whether it fits inside
// the window. Timestamps older than the window are dropped in place.
func (rl *RateLimiter) allow(key string) bool {
	now := time.Now()
	cutoff := now.Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	v := rl.clients[key]
	if v == nil {
		v = &visitor{}
		rl.clients[key] = v
	}
	v.lastSeen = now

	live := v.stamps[:0]
	for _, ts := range v.stamps {
		if ts.After(cutoff) {
			live = append(live, ts)
		}
	}
	v.stamps = live

	if len(v.stamps) >= rl.limit {
		return false
	}
	v.stamps = append(v.stamps, now)
	return true
}

// cleanup drops clients that have been quiet for a full window.
func (rl *RateLimiter) cleanup() {
	cutoff := time.Now().Add(-rl.window)

	rl.mu.Lock()
	before := len(rl.clients)
	for key, v := range rl.clients {
		if v.lastSeen.Before(cutoff) {
			delete(rl.clients, key)
		}
	}
	pruned := before - len(rl.clients)
	rl.mu.Unlock()

	if pruned > 0 {
		slog.Debug("rate limiter pruned idle clients", "count", pruned)
	}
}

// Middleware rejects over-limit requests with 429 and logs the source
// so repeated lockouts show up in the access log.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.allow(ip) {
			slog.Warn("rate limit exceeded", "client", ip, "path", r.URL.Path)
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the client address behind a reverse proxy. The
// leftmost X-Forwarded-For entry wins, then X-Real-IP, then the bare
// socket address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
