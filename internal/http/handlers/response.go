package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-sports-backend/internal/http/middleware"
	"github.com/tbourn/go-sports-backend/internal/services"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Echo of X-Request-ID, for matching a client report to server logs.
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Machine-readable code, one of the ErrCode constants.
	Code string `json:"code" example:"not_found"`
	// Localised message, safe to show to the user.
	Message string `json:"message" example:"Grupo não encontrado"`
}

// fail aborts with the error envelope. 5xx responses are logged at error
// level; client errors only at debug.
func fail(c *gin.Context, status int, code, msg string) {
	lg := middleware.LoggerFrom(c)
	if status >= http.StatusInternalServerError {
		lg.Error().Int("status", status).Str("code", code).Msg(msg)
	} else {
		lg.Debug().Int("status", status).Str("code", code).Msg(msg)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	})
}

// failErr maps a service error to its status and code. Anything that is not
// a typed client error becomes an opaque 500 and the cause is logged.
func failErr(c *gin.Context, err error) {
	var se *services.Error
	if !errors.As(err, &se) || se.Kind == services.KindInternal {
		middleware.LoggerFrom(c).Error().Err(err).Msg("service failure")
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		return
	}
	status, code := statusOf(se.Kind)
	fail(c, status, code, se.Message)
}

// Fail writes the error envelope; the router uses it for 404/405 fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

func ok(c *gin.Context, status int, body any) { c.JSON(status, body) }

func noContent(c *gin.Context) { c.Status(http.StatusNoContent) }

// notModified sets the ETag and, when If-None-Match names it (weak
// comparison, list or "*"), answers 304 and reports true.
func notModified(c *gin.Context, etag string) bool {
	c.Header("ETag", etag)
	inm := c.GetHeader("If-None-Match")
	if inm == "" {
		return false
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, tag := range strings.Split(inm, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" || strings.TrimPrefix(tag, "W/") == want {
			c.Status(http.StatusNotModified)
			return true
		}
	}
	return false
}
