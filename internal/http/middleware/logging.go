package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"runtime/debug"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	requestIDKey    = "requestID"
	requestIDHeader = "X-Request-ID"
	loggerKey       = "logger"

	maxRequestIDLen   = 128
	maxQueryLogLength = 2048
)

// RequestID reuses a well-formed incoming X-Request-ID or mints a UUID, then
// echoes it on the response and stores it under "requestID".
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if !validRequestID(rid) {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

// validRequestID rejects ids that would pollute logs: empty, oversized, or
// containing whitespace/control characters.
func validRequestID(s string) bool {
	if s == "" || len(s) > maxRequestIDLen {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) < 0
}

// Logger attaches a request-scoped logger carrying the raw user id and route
// parameters, then writes one access line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		uid, _ := UserID(c)

		l := requestLogger(c, false).
			Str("user_id", uid).
			Str("remote_ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Str("query", truncate(c.Request.URL.RawQuery, maxQueryLogLength)).
			Int64("bytes_in", c.Request.ContentLength).
			Logger()
		attachLogger(c, &l)

		c.Next()

		var ev *zerolog.Event
		if len(c.Errors) > 0 {
			ev = l.Error().Str("errors", c.Errors.String())
		} else {
			ev = accessEvent(&l, c)
		}
		ev.Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Int("bytes_out", c.Writer.Size()).
			Bool("replay", IsReplay(c)).
			Msg("request")
	}
}

// ContextLogger attaches the request-scoped logger without writing an access
// line; RedactingLogger writes that. User ids, whether the caller's or a
// route parameter on a /user/ route, are logged as pseudonyms.
func ContextLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, _ := UserID(c)
		l := requestLogger(c, true).Str("user", pseudonym(uid)).Logger()
		attachLogger(c, &l)
		c.Next()
	}
}

// requestLogger seeds a logger with the correlation id, the route template
// and the route parameters (postId becomes post_id).
func requestLogger(c *gin.Context, redact bool) zerolog.Context {
	rid, _ := c.Get(requestIDKey)
	route := routeOrPath(c)
	lc := log.With().
		Str("request_id", asString(rid)).
		Str("method", c.Request.Method).
		Str("route", route)
	userRoute := strings.Contains(route, "/user/:")
	for _, p := range c.Params {
		v := p.Value
		if redact && userRoute {
			v = pseudonym(v)
		}
		lc = lc.Str(snakeCase(p.Key), v)
	}
	return lc
}

func attachLogger(c *gin.Context, l *zerolog.Logger) {
	c.Set(loggerKey, l)
	c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))
}

// accessEvent picks the level from the response status.
func accessEvent(l *zerolog.Logger, c *gin.Context) *zerolog.Event {
	switch s := c.Writer.Status(); {
	case s >= 500:
		return l.Error()
	case s >= 400:
		return l.Warn()
	default:
		return l.Info()
	}
}

// Recovery turns a panic into a 500 with the standard error body, unless
// the handler already started writing.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			LoggerFrom(c).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if c.Writer.Written() {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			rid, _ := c.Get(requestIDKey)
			c.Header(requestIDHeader, asString(rid))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"request_id": asString(rid),
				"code":       "internal_error",
				"message":    "internal server error",
			})
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped logger. Without logging middleware
// it falls back to the global logger tagged with the request id, if any.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	lc := log.With()
	if rid, ok := c.Get(requestIDKey); ok {
		lc = lc.Str("request_id", asString(rid))
	}
	l := lc.Logger()
	return &l
}

// pseudonym is a stable, non-reversible tag for a user id so log lines can
// be correlated without storing the id. Empty stays empty.
func pseudonym(uid string) string {
	if uid == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(uid))
	return "u_" + hex.EncodeToString(sum[:6])
}

func routeOrPath(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}
	return c.Request.URL.Path
}

// snakeCase converts route parameter names like "postId" to "post_id".
func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// truncate cuts s to max bytes and appends an ellipsis; max <= 0 disables it.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
