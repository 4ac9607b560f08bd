package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// staleLimiterAge is how long an IP's limiter may sit unused before pruning.
const staleLimiterAge = 10 * time.Minute

// rateLimiterStore holds per-IP token bucket limiters.
type rateLimiterStore struct {
	mu       sync.Mutex
	limiters map[string]*rateLimiterEntry
	rps      float64
	burst    int
}

// rateLimiterEntry pairs a limiter with its last access time for pruning.
type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimitMiddleware enforces per-IP rate limiting using a token bucket per
// client address. The client IP comes from c.ClientIP(), which honors
// X-Forwarded-For and X-Real-IP. Requests over the limit receive 429 with a
// Retry-After header.
func RateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := &rateLimiterStore{
		limiters: make(map[string]*rateLimiterEntry),
		rps:      rps,
		burst:    burst,
	}

	return func(c *gin.Context) {
		limiter := store.getLimiter(c.ClientIP())

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(reservation.Delay().Seconds())
			reservation.Cancel()

			logger.Debug("rate limit exceeded",
				slog.String("client_ip", c.ClientIP()),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many requests from this IP. Please retry after the specified delay.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// getLimiter retrieves or creates the limiter for an IP, pruning stale
// entries along the way so the map stays bounded without a background task.
func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.limiters[ip]; ok {
		entry.lastAccess = now
		return entry.limiter
	}

	for key, entry := range s.limiters {
		if now.Sub(entry.lastAccess) > staleLimiterAge {
			delete(s.limiters, key)
		}
	}

	limiter := rate.NewLimiter(rate.Limit(s.rps), s.burst)
	s.limiters[ip] = &rateLimiterEntry{limiter: limiter, lastAccess: now}
	return limiter
}
