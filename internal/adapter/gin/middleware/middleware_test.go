package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"wegrowup-api/pkg/logger"
	"wegrowup-api/pkg/metrics"
	"wegrowup-api/pkg/ratelimit"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	return r
}

func do(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRateLimiter(t *testing.T) {
	limiter := ratelimit.New(setupTestRedis(t), ratelimit.Config{
		RequestsPerSecond: 0.001,
		BurstCapacity:     2,
		Enabled:           true,
	}, zaptest.NewLogger(t))

	r := newEngine(RateLimiter(limiter))
	r.GET("/api", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, "/api").Code)
	assert.Equal(t, http.StatusOK, do(r, "/api").Code)

	w := do(r, "/api")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
}

func TestRateLimiter_Disabled(t *testing.T) {
	r := newEngine(RateLimiter(nil))
	r.GET("/api", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do(r, "/api").Code)
	}
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())
	r.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, logger.GetRequestID(c.Request.Context()))
	})

	t.Run("generated", func(t *testing.T) {
		w := do(r, "/id")
		require.NotEmpty(t, w.Body.String())
		assert.Equal(t, w.Body.String(), w.Header().Get(logger.RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/id", nil)
		req.Header.Set(logger.RequestIDHeader, "given-id")
		r.ServeHTTP(w, req)

		assert.Equal(t, "given-id", w.Body.String())
		assert.Equal(t, "given-id", w.Header().Get(logger.RequestIDHeader))
	})
}

func TestRecovery(t *testing.T) {
	log := zaptest.NewLogger(t)
	r := newEngine(Recovery(log), Logger(log))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := do(r, "/panic")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
}

func TestMetrics(t *testing.T) {
	m := metrics.New("test")
	r := newEngine(Metrics(m))
	r.GET("/api", func(c *gin.Context) { c.Status(http.StatusOK) })

	do(r, "/api")
	do(r, "/missing")

	count, err := testutil.GatherAndCount(m.Registry(), "test_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
