package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveHTTP(t *testing.T) {
	m := New("test")

	m.ObserveHTTP("GET", "/api", "200", 5*time.Millisecond)
	m.ObserveHTTP("GET", "/api", "200", 5*time.Millisecond)
	m.ObserveHTTP("GET", "/api", "429", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api", "429")))
}

func TestObserveGRPC(t *testing.T) {
	m := New("test")

	m.ObserveGRPC("/app.v1.AppService/GetData", "OK", time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.grpcRequests.WithLabelValues("/app.v1.AppService/GetData", "OK")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTP("GET", "/", "200", 0)
		m.ObserveGRPC("/x", "OK", 0)
	})
}

func TestHandler(t *testing.T) {
	m := New("test")
	m.ObserveHTTP("GET", "/api", "200", time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `test_http_requests_total{method="GET",path="/api",status="200"} 1`)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
