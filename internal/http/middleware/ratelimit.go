// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements an in-memory token-bucket rate limiter with one
// bucket per (caller, class). Reads and writes are budgeted separately so a
// client hammering like/unlike or comment endpoints exhausts its write
// budget without starving its reads.
//
// The limiter is process-local; it protects a single instance and is not an
// authorization mechanism.
package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// keyFunc selects the identity used to key a rate-limit bucket.
type keyFunc func(*gin.Context) string

// KeyByUserOrIP keys buckets by the authenticated user id when Identity
// resolved one, else by client IP. Keys are prefixed ("user:", "ip:") so the
// two namespaces never collide.
func KeyByUserOrIP() keyFunc {
	return func(c *gin.Context) string {
		if uid, ok := UserID(c); ok {
			return "user:" + uid
		}
		return "ip:" + c.ClientIP()
	}
}

// Limits is a token-bucket budget.
type Limits struct {
	RPS   float64 // tokens replenished per second
	Burst int     // bucket size; values <= 0 become 1
}

func (l Limits) normalized() Limits {
	if l.Burst <= 0 {
		l.Burst = 1
	}
	if l.RPS < 0 {
		l.RPS = 0
	}
	return l
}

// retryAfter is the whole number of seconds until one token is back.
func (l Limits) retryAfter() string {
	if l.RPS <= 0 {
		return "60"
	}
	return strconv.Itoa(int(math.Max(1, math.Ceil(1/l.RPS))))
}

type requestClass string

const (
	classRead  requestClass = "read"
	classWrite requestClass = "write"
)

func classify(method string) requestClass {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return classRead
	default:
		return classWrite
	}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces per-caller budgets. It is safe for concurrent use.
type RateLimiter struct {
	read  Limits
	write Limits
	keyFn keyFunc

	mu        sync.Mutex
	buckets   map[string]*bucket
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter builds a limiter where reads and writes share the same
// budget. Use WithWriteLimits to give mutating requests their own.
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	l := Limits{RPS: rps, Burst: burst}.normalized()
	return &RateLimiter{
		read:    l,
		write:   l,
		keyFn:   keyFn,
		buckets: make(map[string]*bucket),
		idleTTL: 10 * time.Minute,
		now:     time.Now,
	}
}

// WithWriteLimits sets the budget for POST/PUT/PATCH/DELETE requests.
func (rl *RateLimiter) WithWriteLimits(l Limits) *RateLimiter {
	rl.write = l.normalized()
	return rl
}

func (rl *RateLimiter) limitsFor(class requestClass) Limits {
	if class == classWrite {
		return rl.write
	}
	return rl.read
}

// limiter returns the bucket for (class, key), creating it on first use.
// Idle buckets are swept at most once per idleTTL.
func (rl *RateLimiter) limiter(class requestClass, key string) *rate.Limiter {
	now := rl.now()
	id := string(class) + "|" + key

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) >= rl.idleTTL {
		for k, b := range rl.buckets {
			if now.Sub(b.lastSeen) >= rl.idleTTL {
				delete(rl.buckets, k)
			}
		}
		rl.lastSweep = now
	}

	if b, ok := rl.buckets[id]; ok {
		b.lastSeen = now
		return b.limiter
	}
	l := rl.limitsFor(class)
	lim := rate.NewLimiter(rate.Limit(l.RPS), l.Burst)
	rl.buckets[id] = &bucket{limiter: lim, lastSeen: now}
	return lim
}

// IsRateBypass reports whether IdempotencyValidator marked this request as
// a replay, which is served without consuming tokens.
func IsRateBypass(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyRateBypass)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// CodeRateLimited is the error code of a throttled request.
const CodeRateLimited = "too_many_requests"

// Handler returns the Gin middleware. A denied request gets 429 with a
// Retry-After header and the standard error envelope:
//
//	{"request_id": "...", "code": "too_many_requests", "message": "rate limit exceeded"}
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) {
			c.Next()
			return
		}

		class := classify(c.Request.Method)
		if rl.limiter(class, rl.keyFn(c)).Allow() {
			c.Next()
			return
		}

		httpThrottled.WithLabelValues(string(class)).Inc()
		c.Header("Retry-After", rl.limitsFor(class).retryAfter())
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": c.Writer.Header().Get(requestIDHeader),
			"code":       CodeRateLimited,
			"message":    "rate limit exceeded",
		})
	}
}
