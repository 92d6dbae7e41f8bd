// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file bridges the external authentication collaborator into the
// request context. Token verification happens upstream (gateway or auth
// proxy); by the time a request reaches this service the verified user id
// is carried in the X-User-ID header.
package middleware

import (
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
)

// HeaderUserID carries the already-authenticated user id.
const HeaderUserID = "X-User-ID"

// ctxKeyUserID is the Gin context key holding the acting user id. Other
// middleware (logging, rate limiting) read it as well.
const ctxKeyUserID = "userID"

// maxUserIDLen bounds the accepted identity header.
const maxUserIDLen = 64

// Identity copies a well-formed X-User-ID header into the Gin context under
// "userID". Missing or malformed values leave the request anonymous; the
// handlers that require an actor reject it with 401.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid := strings.TrimSpace(c.GetHeader(HeaderUserID)); validUserID(uid) {
			c.Set(ctxKeyUserID, uid)
		}
		c.Next()
	}
}

// UserID returns the acting user id stored by Identity.
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyUserID)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

func validUserID(s string) bool {
	if s == "" || len(s) > maxUserIDLen {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
