package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_LabelsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())
	r.GET("/posts/:postId", func(c *gin.Context) { c.String(http.StatusOK, c.Param("postId")) })
	r.DELETE("/posts/:postId/like", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	okCounter := httpRequests.WithLabelValues("GET", "/posts/:postId", "200")
	unlikeCounter := httpRequests.WithLabelValues("DELETE", "/posts/:postId/like", "204")
	missCounter := httpRequests.WithLabelValues("GET", unmatchedRoute, "404")
	baseOK := testutil.ToFloat64(okCounter)
	baseUnlike := testutil.ToFloat64(unlikeCounter)
	baseMiss := testutil.ToFloat64(missCounter)

	for _, tc := range []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/posts/p-1", http.StatusOK},
		{http.MethodGet, "/posts/p-2", http.StatusOK},
		{http.MethodDelete, "/posts/p-1/like", http.StatusNoContent},
		{http.MethodGet, "/wp-admin/setup.php", http.StatusNotFound},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Code != tc.want {
			t.Fatalf("%s %s -> %d want %d", tc.method, tc.path, w.Code, tc.want)
		}
	}

	if got := testutil.ToFloat64(okCounter); got != baseOK+2 {
		t.Fatalf("both post ids should share one series: got %v want %v", got, baseOK+2)
	}
	if got := testutil.ToFloat64(unlikeCounter); got != baseUnlike+1 {
		t.Fatalf("unlike counter = %v want %v", got, baseUnlike+1)
	}
	if got := testutil.ToFloat64(missCounter); got != baseMiss+1 {
		t.Fatalf("unmatched counter = %v want %v", got, baseMiss+1)
	}
	if got := testutil.ToFloat64(httpInflight); got != 0 {
		t.Fatalf("inflight = %v want 0", got)
	}
}

func TestMetrics_ThrottledCounter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewRateLimiter(100, 100, KeyByUserOrIP()).WithWriteLimits(Limits{RPS: 0.01, Burst: 1}).Handler())
	r.POST("/posts/:postId/comments", func(c *gin.Context) { c.Status(http.StatusCreated) })

	writes := httpThrottled.WithLabelValues(string(classWrite))
	base := testutil.ToFloat64(writes)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/posts/p/comments", nil))
	}
	if got := testutil.ToFloat64(writes); got != base+2 {
		t.Fatalf("throttled writes = %v want %v", got, base+2)
	}
}
