// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for forms, votes and results.
// All methods are safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	VotesCast              *prometheus.CounterVec
	VotesRejected          *prometheus.CounterVec
	FormEvents             *prometheus.CounterVec
	EmailClassifications   *prometheus.CounterVec
	ActiveSessions         prometheus.Gauge
	SessionsExpired        prometheus.Counter
	MissingTallyEntries    prometheus.Counter
	ResultsRefreshDuration prometheus.Histogram
}

// New creates a Metrics instance registered on its own registry, together
// with the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		VotesCast: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "univote_votes_cast_total",
			Help: "Total number of votes stored, by email classification",
		}, []string{"classification"}),
		VotesRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "univote_votes_rejected_total",
			Help: "Total number of rejected vote submissions, by reason",
		}, []string{"reason"}),
		FormEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "univote_form_events_total",
			Help: "Total number of form events applied, by event",
		}, []string{"event"}),
		EmailClassifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "univote_email_classifications_total",
			Help: "Total number of validated email addresses, by classification",
		}, []string{"classification"}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "univote_form_sessions_active",
			Help: "Number of open form sessions",
		}),
		SessionsExpired: factory.NewCounter(prometheus.CounterOpts{
			Name: "univote_form_sessions_expired_total",
			Help: "Total number of form sessions removed by the sweeper",
		}),
		MissingTallyEntries: factory.NewCounter(prometheus.CounterOpts{
			Name: "univote_missing_tally_entries_total",
			Help: "Total number of candidates rendered without a tally entry",
		}),
		ResultsRefreshDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "univote_results_refresh_duration_seconds",
			Help:    "Duration of scheduled results refreshes",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for gathering in tests
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// IncrementVoteCast records a stored vote.
func (m *Metrics) IncrementVoteCast(classification string) {
	if m == nil {
		return
	}
	m.VotesCast.WithLabelValues(classification).Inc()
}

// IncrementVoteRejected records a refused submission.
func (m *Metrics) IncrementVoteRejected(reason string) {
	if m == nil {
		return
	}
	m.VotesRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementFormEvent(event string) {
	if m == nil {
		return
	}
	m.FormEvents.WithLabelValues(event).Inc()
}

func (m *Metrics) IncrementEmailClassification(classification string) {
	if m == nil {
		return
	}
	m.EmailClassifications.WithLabelValues(classification).Inc()
}

// SetActiveSessions reports the current number of open form sessions.
func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.ActiveSessions.Set(float64(n))
}

func (m *Metrics) AddSessionsExpired(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SessionsExpired.Add(float64(n))
}

func (m *Metrics) AddMissingTallyEntries(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.MissingTallyEntries.Add(float64(n))
}

// ObserveResultsRefresh records the duration of a results refresh.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveResultsRefresh(start time.Time) {
	if m == nil {
		return
	}
	m.ResultsRefreshDuration.Observe(time.Since(start).Seconds())
}
