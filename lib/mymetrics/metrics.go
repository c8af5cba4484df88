package mymetrics

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the checkout session metrics
type Metrics struct {
	gatherer prometheus.Gatherer

	SessionsStarted  *prometheus.CounterVec
	SessionsRejected *prometheus.CounterVec
	SessionsResolved *prometheus.CounterVec
	SessionDuration  *prometheus.HistogramVec
	RedirectEvents   *prometheus.CounterVec
	OptIns           *prometheus.CounterVec
	PageLoadDuration prometheus.Histogram
}

// New creates all metrics and registers them against a fresh registry.
func New(namespace string) *Metrics {
	return newWithRegistry(namespace, prometheus.NewRegistry())
}

func newWithRegistry(namespace string, reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		SessionsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checkout_sessions_started_total",
				Help:      "Checkout sessions started, by mode",
			},
			[]string{"mode"},
		),
		SessionsRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checkout_sessions_rejected_total",
				Help:      "Start requests that did not result in a session, by reason",
			},
			[]string{"reason"},
		),
		SessionsResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checkout_sessions_resolved_total",
				Help:      "Checkout sessions resolved, by outcome and resolution source",
			},
			[]string{"outcome", "resolved_by"},
		),
		SessionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "checkout_session_duration_seconds",
				Help:      "Time between start and resolution of a checkout session",
				Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 900},
			},
			[]string{"outcome"},
		),
		RedirectEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checkout_redirect_events_total",
				Help:      "Redirect events received by the host, by whether they carried a result marker",
			},
			[]string{"matched"},
		),
		OptIns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checkout_optins_total",
				Help:      "Opt-in responses surfaced by the checkout, by kind",
			},
			[]string{"kind"},
		),
		PageLoadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "checkout_page_load_seconds",
				Help:      "Checkout page load time as reported by the checkout surface",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
		),
	}

	reg.MustRegister(
		m.SessionsStarted,
		m.SessionsRejected,
		m.SessionsResolved,
		m.SessionDuration,
		m.RedirectEvents,
		m.OptIns,
		m.PageLoadDuration,
	)

	return m
}

func (m *Metrics) RegisterEndpoints(router *mux.Router) {
	router.Handle("/metrics", promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
}

func (m *Metrics) SessionStarted(mode string) {
	m.SessionsStarted.WithLabelValues(mode).Inc()
}

func (m *Metrics) SessionRejected(reason string) {
	m.SessionsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) SessionResolved(outcome string, resolvedBy string, elapsed time.Duration) {
	m.SessionsResolved.WithLabelValues(outcome, resolvedBy).Inc()
	m.SessionDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (m *Metrics) RedirectReceived(matched bool) {
	label := "false"
	if matched {
		label = "true"
	}
	m.RedirectEvents.WithLabelValues(label).Inc()
}

func (m *Metrics) OptInReceived(kind string) {
	m.OptIns.WithLabelValues(kind).Inc()
}

func (m *Metrics) PageLoaded(elapsed time.Duration) {
	m.PageLoadDuration.Observe(elapsed.Seconds())
}
