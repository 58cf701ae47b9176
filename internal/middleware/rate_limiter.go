package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per client IP.
type RateLimiter struct {
	mu     sync.Mutex
	bucket map[string]*rate.Limiter
	rate   rate.Limit
	burst  int
}

// NewRateLimiter allows perMinute requests per IP with the same burst.
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &RateLimiter{
		bucket: make(map[string]*rate.Limiter),
		rate:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:  perMinute,
	}
}

func (r *RateLimiter) limiterFor(ip string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	limiter, ok := r.bucket[ip]
	if !ok {
		limiter = rate.NewLimiter(r.rate, r.burst)
		r.bucket[ip] = limiter
	}
	return limiter
}

// Allow consumes a token for ip.
func (r *RateLimiter) Allow(ip string) bool {
	return r.limiterFor(ip).Allow()
}

// Limit rejects requests over the limit. onLimit renders the rejection; when
// nil a JSON 429 is sent.
func (r *RateLimiter) Limit(logger logrus.FieldLogger, onLimit gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if r.Allow(ip) {
			c.Next()
			return
		}

		logger.WithFields(logrus.Fields{
			"request_id": GetRequestID(c),
			"ip":         ip,
			"path":       c.Request.URL.Path,
		}).Warn("too many requests")

		if onLimit != nil {
			onLimit(c)
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
	}
}
