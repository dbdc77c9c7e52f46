package api

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

type rateLimiter interface {
	Allow() bool
}

// tokenBucket wraps rate.Limiter and remembers the refill interval for Retry-After.
type tokenBucket struct {
	limiter    *rate.Limiter
	retryAfter time.Duration
}

// newRateLimiter returns nil, meaning unlimited, when either setting is not positive.
func newRateLimiter(ratePerSecond float64, burst int) rateLimiter {
	if ratePerSecond <= 0 || burst <= 0 {
		return nil
	}
	return &tokenBucket{
		limiter:    rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		retryAfter: time.Duration(float64(time.Second) / ratePerSecond),
	}
}

func (b *tokenBucket) Allow() bool {
	return b.limiter.Allow()
}

func rateLimitMiddleware(limiter rateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	retryAfter := 1
	if bucket, ok := limiter.(*tokenBucket); ok {
		retryAfter = int(math.Ceil(bucket.retryAfter.Seconds()))
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limiter.Allow() {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		writeError(w, http.StatusTooManyRequests, "Too many requests", "rate limit exceeded, please retry shortly")
	})
}
