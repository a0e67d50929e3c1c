package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
)

// Metrics owns its registry so several apps (tests) can coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	qaCalls  *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docchat_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "docchat_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		qaCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docchat_qa_backend_calls_total",
			Help: "Calls to the document QA backend by operation and outcome.",
		}, []string{"operation", "outcome"}),
	}
	reg.MustRegister(
		m.requests,
		m.duration,
		m.qaCalls,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware must sit outside the error handler so it sees final status codes.
func (m *Metrics) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		route := "unmatched"
		if r := ctx.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		method := ctx.Method()
		m.requests.WithLabelValues(method, route, strconv.Itoa(ctx.Response().StatusCode())).Inc()
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}

// ObserveQA is safe on a nil receiver.
func (m *Metrics) ObserveQA(operation, outcome string) {
	if m == nil {
		return
	}
	m.qaCalls.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) QACount(operation, outcome string) float64 {
	if m == nil {
		return 0
	}
	return counterValue(m.qaCalls.WithLabelValues(operation, outcome))
}
