package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"campus_lms_backend/internal/config"

	"github.com/gin-gonic/gin"
)

func newLimitedRouter(cfg config.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimiter(cfg))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimiterDefaultsWhenUnconfigured(t *testing.T) {
	r := newLimitedRouter(config.RateLimitConfig{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 under the default limit", w.Code)
	}
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	r := newLimitedRouter(config.RateLimitConfig{MaxRequests: 1, WindowMinutes: 1})

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", first.Code)
	}

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", second.Code)
	}
}
