// Package metrics holds the Prometheus collectors for calendar generation
// and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"astrotrade/internal/types"
)

// Registry holds all astrotrade metrics on a dedicated prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	// Generated days by recommendation
	DaysGenerated *prometheus.CounterVec
	// Calendar generation latency
	GenerationDuration *prometheus.HistogramVec
	// Failed generations by error kind
	GenerationErrors *prometheus.CounterVec
	// Days whose nakshatra changes inside the session
	MarketHourTransitions prometheus.Counter

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// NewRegistry creates the collectors and registers them, plus the Go and
// process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		DaysGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astrotrade_days_generated_total",
				Help: "Calendar days generated by recommendation",
			},
			[]string{"recommendation"},
		),

		GenerationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "astrotrade_generation_duration_seconds",
				Help:    "Duration of calendar generation in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
			},
			[]string{"result"},
		),

		GenerationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astrotrade_generation_errors_total",
				Help: "Failed calendar generations by error kind",
			},
			[]string{"kind"},
		),

		MarketHourTransitions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "astrotrade_market_hour_transitions_total",
				Help: "Generated days whose nakshatra changes during market hours",
			},
		),

		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astrotrade_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),

		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "astrotrade_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}

	r.reg.MustRegister(
		r.DaysGenerated,
		r.GenerationDuration,
		r.GenerationErrors,
		r.MarketHourTransitions,
		r.HTTPRequests,
		r.HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveGeneration records one successful calendar run.
func (r *Registry) ObserveGeneration(records []types.DayRecord, d time.Duration) {
	r.GenerationDuration.WithLabelValues("success").Observe(d.Seconds())
	for _, rec := range records {
		r.DaysGenerated.WithLabelValues(string(rec.Recommendation)).Inc()
		if rec.ChangeDuringMarket {
			r.MarketHourTransitions.Inc()
		}
	}
}

// ObserveFailure records a failed calendar run.
func (r *Registry) ObserveFailure(kind string, d time.Duration) {
	r.GenerationDuration.WithLabelValues("error").Observe(d.Seconds())
	r.GenerationErrors.WithLabelValues(kind).Inc()
}

func (r *Registry) ObserveHTTP(route string, code int, d time.Duration) {
	r.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	r.HTTPDuration.WithLabelValues(route).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry for tests and exporters.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}
