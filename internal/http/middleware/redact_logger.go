package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Scrub patterns, applied in this order. UUIDs go first so the loose phone
// pattern cannot eat their digit groups.
var scrubbers = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}\b`), "[REDACTED:id]"},
	{regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`), "[REDACTED:email]"},
	{regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`), "[REDACTED:phone]"},
}

var alwaysMasked = []string{"Authorization", "Cookie", "Set-Cookie"}

func scrub(s string) string {
	for _, sc := range scrubbers {
		s = sc.re.ReplaceAllString(s, sc.repl)
	}
	return s
}

// RedactOptions lists extra request headers whose values are replaced
// wholesale. Authorization and cookies are always masked.
type RedactOptions struct {
	MaskHeaders []string
}

// RedactingLogger writes the access line for ContextLogger's request logger,
// so it inherits the pseudonymous user and route fields. Query strings and
// header values are scrubbed of ids, emails and phone numbers; bodies are
// never logged.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	masked := make(map[string]struct{}, len(alwaysMasked)+len(opts.MaskHeaders))
	for _, h := range append(append([]string{}, alwaysMasked...), opts.MaskHeaders...) {
		if h = strings.TrimSpace(h); h != "" {
			masked[strings.ToLower(h)] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		query := scrub(truncate(c.Request.URL.RawQuery, maxQueryLogLength))
		headers := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := masked[strings.ToLower(k)]; ok {
				headers[k] = "[REDACTED]"
				continue
			}
			headers[k] = scrub(strings.Join(vv, ", "))
		}

		c.Next()

		l := LoggerFrom(c)
		accessEvent(l, c).
			Str("query", query).
			Int("status", c.Writer.Status()).
			Int("bytes_out", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Bool("replay", IsReplay(c)).
			Interface("headers", headers).
			Msg("request")
	}
}
