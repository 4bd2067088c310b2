package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the console's Prometheus registry. A nil Collector records nothing.
type Collector struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	rateLimited *prometheus.CounterVec
	dataCalls   *prometheus.HistogramVec
}

func New() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrms",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hrms",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrms",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter by scope.",
		}, []string{"scope"}),
		dataCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hrms",
			Name:      "data_call_duration_seconds",
			Help:      "Data layer call latency by operation, entity and outcome.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"op", "entity", "outcome"}),
	}
	reg.MustRegister(
		c.requests,
		c.duration,
		c.rateLimited,
		c.dataCalls,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Record counts one finished HTTP request. route is the chi route pattern.
func (c *Collector) Record(route, method string, status int, d time.Duration) {
	if c == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	c.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(route, method).Observe(d.Seconds())
}

func (c *Collector) RateLimited(scope string) {
	if c == nil {
		return
	}
	c.rateLimited.WithLabelValues(scope).Inc()
}

// ObserveData records one data layer call.
func (c *Collector) ObserveData(op, entity string, d time.Duration, err error) {
	if c == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.dataCalls.WithLabelValues(op, entity, outcome).Observe(d.Seconds())
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
