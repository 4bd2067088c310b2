package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord(t *testing.T) {
	c := New()
	c.Record("/admin/{entity}", http.MethodGet, http.StatusOK, 20*time.Millisecond)
	c.Record("/admin/{entity}", http.MethodGet, http.StatusOK, 10*time.Millisecond)
	c.Record("", http.MethodGet, http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("/admin/{entity}", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("unmatched", "GET", "404")))
}

func TestObserveDataAndRateLimited(t *testing.T) {
	c := New()
	c.ObserveData("list", "regions", time.Millisecond, nil)
	c.ObserveData("create", "regions", time.Millisecond, errors.New("boom"))
	c.RateLimited("auth")

	assert.Equal(t, 2, testutil.CollectAndCount(c.dataCalls))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rateLimited.WithLabelValues("auth")))
}

func TestNilCollectorIsInert(t *testing.T) {
	var c *Collector
	c.Record("/", http.MethodGet, http.StatusOK, time.Millisecond)
	c.RateLimited("auth")
	c.ObserveData("list", "regions", time.Millisecond, nil)
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := New()
	c.Record("/dashboard", http.MethodGet, http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hrms_http_requests_total{method="GET",route="/dashboard",status="200"} 1`)
}
