package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// apiCSP locks JSON responses down completely.
	apiCSP = "default-src 'none'; frame-ancestors 'none'"
	// docsCSP lets the Swagger UI load its own bundle and inline styles.
	docsCSP = "default-src 'self'; img-src 'self' data:; style-src 'self' 'unsafe-inline'; script-src 'self' 'unsafe-inline'; frame-ancestors 'none'"

	defaultHSTSMaxAge = 180 * 24 * time.Hour
)

// SecurityOptions configures SecurityHeaders.
type SecurityOptions struct {
	// EnableHSTS emits Strict-Transport-Security on HTTPS requests only.
	EnableHSTS bool
	HSTSMaxAge time.Duration // <= 0 means 180 days

	// EnablePolicy adds Permissions-Policy and X-Permitted-Cross-Domain-Policies.
	EnablePolicy bool

	// PrivateForUsers marks responses to identified callers as
	// "private, no-cache" and varies them on the identity header. Feeds
	// carry per-viewer fields (liked_by_me, attending) that a shared cache
	// must never hand to someone else; no-cache still allows ETag
	// revalidation.
	PrivateForUsers bool

	// DocsPrefix is the path prefix served by the Swagger UI, which gets a
	// CSP permissive enough to render. Empty disables the exception.
	DocsPrefix string
}

// SecurityHeaders sets hardening headers on every response. Place it after
// Identity when PrivateForUsers is on.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := opt.HSTSMaxAge
	if maxAge <= 0 {
		maxAge = defaultHSTSMaxAge
	}
	hsts := "max-age=" + strconv.Itoa(int(maxAge.Seconds())) + "; includeSubDomains; preload"

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if opt.DocsPrefix != "" && strings.HasPrefix(c.Request.URL.Path, opt.DocsPrefix) {
			h.Set("Content-Security-Policy", docsCSP)
		} else {
			h.Set("Content-Security-Policy", apiCSP)
		}

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}

		if opt.PrivateForUsers {
			if _, ok := UserID(c); ok {
				h.Set("Cache-Control", "private, no-cache")
				h.Add("Vary", HeaderUserID)
			}
		}

		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}

		if h.Get(requestIDHeader) != "" {
			exposeHeader(h, requestIDHeader)
		}

		c.Next()
	}
}

// exposeHeader appends name to Access-Control-Expose-Headers unless it is
// already listed.
func exposeHeader(h http.Header, name string) {
	const key = "Access-Control-Expose-Headers"
	cur := h.Get(key)
	if cur == "" {
		h.Set(key, name)
		return
	}
	for _, p := range strings.Split(cur, ",") {
		if strings.EqualFold(strings.TrimSpace(p), name) {
			return
		}
	}
	h.Set(key, cur+", "+name)
}

// isHTTPS reports whether the request arrived over TLS directly or through
// a proxy that set X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
