package httpapi

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the HTTP collectors on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	inFlight prometheus.Gauge
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	m.registry.MustRegister(m.inFlight, m.requests, m.duration)
	return m
}

// Registry lets other components register collectors next to the HTTP ones.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware observes every request. It runs inside the request logger, so
// handler errors are already rendered when the status is read. Routes are
// labelled by pattern to keep label cardinality bounded.
func (m *Metrics) Middleware() Middleware {
	return Middleware{
		Priority: 800,
		Handler: func(c *fiber.Ctx) error {
			m.inFlight.Inc()
			defer m.inFlight.Dec()

			start := time.Now()
			err := c.Next()

			status := c.Response().StatusCode()
			if err != nil {
				status, _ = mapError(c, err)
			}
			route := c.Route().Path
			labels := []string{c.Method(), route, strconv.Itoa(status)}

			m.duration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			m.requests.WithLabelValues(labels...).Inc()
			return err
		},
	}
}

// Handler serves the exposition format for the registry.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
