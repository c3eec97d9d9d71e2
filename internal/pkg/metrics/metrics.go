// Package metrics holds the Prometheus collectors of the service.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "flight_scraper"

// Attempt outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeRetryable = "retryable"
	OutcomeTerminal  = "terminal"
)

type Metrics struct {
	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
	attempts       *prometheus.CounterVec
	searches       *prometheus.CounterVec
	searchLatency  *prometheus.HistogramVec
	upstream       *prometheus.CounterVec
	activeSessions prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
			[]string{"route", "method", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "http_request_duration_seconds",
				Help:    "HTTP request duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "scrape_attempts_total", Help: "Scrape attempts by outcome."},
			[]string{"outcome"}, // outcome: success|retryable|terminal
		),
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "searches_total", Help: "Searches by result kind."},
			[]string{"result"},
		),
		searchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "search_duration_seconds",
				Help:    "Search duration seconds including retries.",
				Buckets: []float64{1, 2.5, 5, 10, 20, 30, 60, 90, 120},
			},
			[]string{"result"},
		),
		upstream: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "upstream_requests_total", Help: "LLM API calls."},
			[]string{"operation", "status"},
		),
		activeSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{Namespace: namespace, Name: "browser_sessions_active", Help: "Open browser sessions."},
		),
		gatherer: reg,
	}

	reg.MustRegister(
		m.httpRequests, m.httpLatency, m.attempts, m.searches,
		m.searchLatency, m.upstream, m.activeSessions,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveHTTP(route, method string, status int, dur time.Duration) {
	if m == nil {
		return
	}

	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func (m *Metrics) ObserveAttempt(outcome string) {
	if m == nil {
		return
	}

	m.attempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveSearch(result string, dur time.Duration) {
	if m == nil {
		return
	}

	m.searches.WithLabelValues(result).Inc()
	m.searchLatency.WithLabelValues(result).Observe(dur.Seconds())
}

func (m *Metrics) ObserveUpstream(operation, status string) {
	if m == nil {
		return
	}

	m.upstream.WithLabelValues(operation, status).Inc()
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}

	m.activeSessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}

	m.activeSessions.Dec()
}
