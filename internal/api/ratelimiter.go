package api

import (
	"math"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"
)

// Workbook exports rebuild the whole batch per request, so they draw from a
// tighter bucket of their own on top of the shared one.
const (
	defaultExportRPS   = 1
	defaultExportBurst = 3
)

type rateLimiter interface {
	Allow() bool
}

type limiterAdapter struct {
	limiter *rate.Limiter
}

// newTokenBucketLimiter shares one bucket across all clients. Non-positive
// arguments fall back to a single request per second.
func newTokenBucketLimiter(ratePerSecond float64, burst int) rateLimiter {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &limiterAdapter{
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

func (l *limiterAdapter) Allow() bool {
	if l == nil || l.limiter == nil {
		return true
	}
	return l.limiter.Allow()
}

// retryAfter is the whole number of seconds until the bucket refills one token.
func (l *limiterAdapter) retryAfter() int {
	if l == nil || l.limiter == nil || l.limiter.Limit() <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(1/float64(l.limiter.Limit()))))
}

func retryAfterSeconds(limiter rateLimiter) int {
	if adapter, ok := limiter.(*limiterAdapter); ok {
		return adapter.retryAfter()
	}
	return 1
}

func rateLimitMiddleware(limiter rateLimiter, next http.Handler) http.Handler {
	return throttle(limiter, "rate limit exceeded, please retry shortly", next)
}

// exportRateLimitMiddleware guards workbook exports with their own bucket.
func exportRateLimitMiddleware(limiter rateLimiter, next http.Handler) http.Handler {
	return throttle(limiter, "export rate limit exceeded, use /api/skus/batch for JSON results", next)
}

func throttle(limiter rateLimiter, details string, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	retry := strconv.Itoa(retryAfterSeconds(limiter))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limiter.Allow() {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Retry-After", retry)
		writeError(w, http.StatusTooManyRequests, "Too many requests", details)
	})
}
