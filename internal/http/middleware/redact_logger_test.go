package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestScrub(t *testing.T) {
	in := "email=a.b+tag@example.com&phone=+1-555-123-4567&post=123e4567-e89b-12d3-a456-426614174000"
	got := scrub(in)
	for _, want := range []string{"[REDACTED:email]", "[REDACTED:phone]", "[REDACTED:id]"} {
		if !strings.Contains(got, want) {
			t.Fatalf("scrub(%q)=%q missing %s", in, got, want)
		}
	}
	if strings.Contains(got, "example.com") || strings.Contains(got, "426614174000") {
		t.Fatalf("scrub left PII behind: %q", got)
	}
	if scrub("sport=football&limit=20") != "sport=football&limit=20" {
		t.Fatalf("scrub touched a clean query")
	}
}

func TestRedactingLogger_AccessLine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(RequestID(), Identity(), ContextLogger())
	r.Use(RedactingLogger(RedactOptions{MaskHeaders: []string{HeaderUserID}}))
	r.GET("/posts/:postId/comments", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"items": []string{}}) })

	req := httptest.NewRequest(http.MethodGet, "/posts/p-1/comments?author=a@b.com", nil)
	req.Header.Set(HeaderUserID, "alice")
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("X-Note", "call 555-123-4567")
	r.ServeHTTP(httptest.NewRecorder(), req)

	lines := logLines(t, buf)
	if len(lines) != 1 {
		t.Fatalf("want one access line, got %d", len(lines))
	}
	m := lines[0]
	if m["level"] != "info" || m["message"] != "request" || m["route"] != "/posts/:postId/comments" || m["post_id"] != "p-1" {
		t.Fatalf("access line: %v", m)
	}
	if m["user"] != pseudonym("alice") || m["query"] != "author=[REDACTED:email]" {
		t.Fatalf("access line: %v", m)
	}
	h, _ := m["headers"].(map[string]any)
	if h["Authorization"] != "[REDACTED]" || h["X-User-Id"] != "[REDACTED]" || h["X-Note"] != "call [REDACTED:phone]" {
		t.Fatalf("headers: %v", h)
	}
	if strings.Contains(buf.String(), "alice") || strings.Contains(buf.String(), "secret") {
		t.Fatalf("sensitive value leaked: %s", buf.String())
	}
}

func TestRedactingLogger_LevelsWithoutContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(RequestID(), RedactingLogger(RedactOptions{}))
	r.GET("/warn", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/error", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, p := range []string{"/warn", "/error"} {
		req := httptest.NewRequest(http.MethodGet, p, nil)
		req.Header.Set(requestIDHeader, "rid"+strings.ReplaceAll(p, "/", "-"))
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	lines := logLines(t, buf)
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d", len(lines))
	}
	if lines[0]["level"] != "warn" || lines[0]["request_id"] != "rid-warn" {
		t.Fatalf("warn line: %v", lines[0])
	}
	if lines[1]["level"] != "error" || lines[1]["request_id"] != "rid-error" {
		t.Fatalf("error line: %v", lines[1])
	}
}
