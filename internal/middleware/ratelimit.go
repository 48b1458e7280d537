package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

const rateLimitMessage = "Too many attempts. Try again in a minute."

type visitor struct {
	count       int
	windowStart time.Time
}

// RateLimiter caps requests per remote address within a fixed window.
// It guards the auth routes against credential stuffing; quiz traffic is
// human-paced and goes unthrottled.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}
	go rl.sweep()
	return rl
}

// sweep drops addresses whose window has lapsed so the map stays bounded.
func (rl *RateLimiter) sweep() {
	for range time.Tick(rl.window) {
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.windowStart) > rl.window {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok || time.Since(v.windowStart) > rl.window {
		rl.visitors[ip] = &visitor{count: 1, windowStart: time.Now()}
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(r.RemoteAddr) {
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", rateLimitMessage, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
