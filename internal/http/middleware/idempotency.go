package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey lets a client retry a comment submission without
// creating a duplicate.
const HeaderIdempotencyKey = "Idempotency-Key"

// CodeBadIdempotencyKey is the error code for a malformed Idempotency-Key.
const CodeBadIdempotencyKey = "bad_idempotency_key"

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
	ctxKeyRateBypass = "rate.bypass"

	defaultIdemMaxLen = 200
	defaultIdemScope  = "postId"
)

var defaultIdemPattern = regexp.MustCompile(`^[A-Za-z0-9._~:\-]+$`)

// GetIdempotencyKey returns the key accepted by IdempotencyValidator.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the lookup found a live record for this
// (user, post, key), i.e. the handler will answer with the stored comment.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyOptions tunes key validation. Zero values take the defaults:
// 200 bytes, token characters, and the "postId" route parameter as scope.
type IdempotencyOptions struct {
	MaxLen     int
	Pattern    *regexp.Regexp
	ScopeParam string
}

// IdempotencyLookup reports whether a still-valid record exists for
// (userID, scopeID, key) at now. TTL is the lookup's business.
type IdempotencyLookup func(ctx context.Context, userID, scopeID, key string, now time.Time) (bool, error)

// IdempotencyValidator validates the Idempotency-Key header on mutating
// requests and stashes it for the handler. When an identified caller
// retries a key the lookup already knows, the request is flagged as a replay
// and exempted from rate limiting. Lookup failures are logged and treated as
// a miss; the handler's own transaction still deduplicates.
//
// Safe methods ignore the header. A malformed key is rejected with 400.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = defaultIdemMaxLen
	}
	pattern := opts.Pattern
	if pattern == nil {
		pattern = defaultIdemPattern
	}
	scope := opts.ScopeParam
	if scope == "" {
		scope = defaultIdemScope
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" || classify(c.Request.Method) == classRead {
			c.Next()
			return
		}
		if len(key) > maxLen || !pattern.MatchString(key) {
			rid, _ := c.Get(requestIDKey)
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": asString(rid),
				"code":       CodeBadIdempotencyKey,
				"message":    "invalid Idempotency-Key",
			})
			return
		}
		c.Set(ctxKeyIdemKey, key)

		uid, authed := UserID(c)
		scopeID := c.Param(scope)
		if lookup == nil || !authed || scopeID == "" {
			c.Next()
			return
		}

		hit, err := lookup(c.Request.Context(), uid, scopeID, key, time.Now().UTC())
		if err != nil {
			LoggerFrom(c).Warn().Err(err).Msg("idempotency lookup failed")
		}
		if hit {
			c.Set(ctxKeyIdemReplay, true)
			c.Set(ctxKeyRateBypass, true)
		}
		c.Next()
	}
}
