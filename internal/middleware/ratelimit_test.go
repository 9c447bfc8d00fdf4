package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/enerlink/enerlink/internal/middleware"
)

func rateLimitedRouter(t *testing.T, rps float64, burst int) *gin.Engine {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.NewRateLimiter(ctx, rps, burst).Handler())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	return r
}

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	r := rateLimitedRouter(t, 1, 3)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}
	}
}

func TestRateLimiterBlocksOverBurst(t *testing.T) {
	r := rateLimitedRouter(t, 0.001, 2)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}
}
