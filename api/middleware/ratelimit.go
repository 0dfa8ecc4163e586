package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
)

// rateLimiter is a fixed-window in-process counter. The storefront has
// to rate limit even when the storage driver is a local file, so the
// limiter cannot depend on an external cache.
type rateLimiter struct {
	mu      sync.Mutex
	windows map[string]*rateWindow
}

type rateWindow struct {
	count   int
	resetAt time.Time
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{windows: make(map[string]*rateWindow)}
}

// increment bumps the counter for the key and returns the new count
// within the current window.
func (rl *rateLimiter) increment(key string, window time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &rateWindow{resetAt: now.Add(window)}
		rl.windows[key] = w
	}
	w.count++

	// opportunistic cleanup keeps the map from growing unbounded
	if len(rl.windows) > 10000 {
		for k, v := range rl.windows {
			if now.After(v.resetAt) {
				delete(rl.windows, k)
			}
		}
	}

	return w.count
}

// getRateLimitForEndpoint determines which rate limit to apply based on config
func (mw *Middleware) getRateLimitForEndpoint(path, method string) (int, time.Duration) {

	// Auth endpoints - strictest limits
	if strings.HasPrefix(path, "/auth/login") ||
		strings.HasPrefix(path, "/auth/register") ||
		strings.HasPrefix(path, "/auth/recover-password") ||
		strings.HasPrefix(path, "/auth/reset-password") {
		return mw.cfg.RateLimit.AuthLimit, mw.cfg.RateLimit.AuthWindow
	}

	// Admin endpoints
	if strings.HasPrefix(path, "/admin") {
		return mw.cfg.RateLimit.AdminLimit, mw.cfg.RateLimit.AdminWindow
	}

	// Expensive read operations
	if method == http.MethodGet && (strings.Contains(path, "/products") ||
		strings.Contains(path, "/search")) {
		return mw.cfg.RateLimit.ExpensiveLimit, mw.cfg.RateLimit.ExpensiveWindow
	}

	// Default limit for everything else
	return mw.cfg.RateLimit.GeneralLimit, mw.cfg.RateLimit.GeneralWindow
}

// getClientIP extracts the real client IP from request headers
func (mw *Middleware) getClientIP(r *http.Request) string {
	// Try X-Forwarded-For first (if behind proxy/load balancer)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	// Try X-Real-IP
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fallback to RemoteAddr
	ip := r.RemoteAddr
	// Remove port if present
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}

	return ip
}

// generateRateLimitKey creates a unique counter key for rate limiting
func (mw *Middleware) generateRateLimitKey(ip, endpoint string) string {
	// Group dynamic routes by their base path to prevent key explosion,
	// e.g. /products/123 -> /products/:id
	normalizedEndpoint := strings.TrimSuffix(endpoint, "/")
	if strings.HasPrefix(normalizedEndpoint, "/products/") && !strings.HasSuffix(normalizedEndpoint, "/products") {
		normalizedEndpoint = "/products/:id"
	}
	if strings.HasPrefix(normalizedEndpoint, "/admin/products/") {
		normalizedEndpoint = "/admin/products/:id"
	}

	return fmt.Sprintf("%s:%s", ip, normalizedEndpoint)
}

// RateLimitMiddleware implements fixed window rate limiting with minimal latency
func (mw *Middleware) RateLimitMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip if rate limiting is disabled
			if !mw.cfg.RateLimit.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			// Skip rate limiting for health checks and event streams
			if r.URL.Path == "/" ||
				strings.HasPrefix(r.URL.Path, "/health") ||
				strings.HasPrefix(r.URL.Path, "/events/") {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := mw.getClientIP(r)
			limit, window := mw.getRateLimitForEndpoint(r.URL.Path, r.Method)
			key := mw.generateRateLimitKey(clientIP, r.URL.Path)

			count := mw.limiter.increment(key, window)

			// Check if limit exceeded
			if count > limit {
				mw.logger.Warn("Rate limit exceeded",
					gecho.Field("ip", clientIP),
					gecho.Field("endpoint", r.URL.Path),
					gecho.Field("count", count),
					gecho.Field("limit", limit),
				)

				w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(window).Unix()))
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))

				gecho.TooManyRequests(w,
					gecho.WithMessage("Rate limit exceeded. Please try again later."),
					gecho.Send(),
				)
				return
			}

			// Add rate limit headers (informational)
			remaining := max(0, limit-count)
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(window).Unix()))

			next.ServeHTTP(w, r)
		})
	}
}
