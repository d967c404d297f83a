// Package metrics provides the centralized Prometheus metrics registry for
// the prediction service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	OutcomesRecordedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bacbo",
		Name:      "outcomes_recorded_total",
		Help:      "Total number of outcomes recorded, by outcome",
	}, []string{"outcome"})
	PredictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bacbo",
		Name:      "predictions_total",
		Help:      "Total number of predictions produced",
	})
	PredictionHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bacbo",
		Name:      "prediction_hits_total",
		Help:      "Total number of scored predictions that matched the outcome",
	})
	PredictionMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bacbo",
		Name:      "prediction_misses_total",
		Help:      "Total number of scored predictions that missed the outcome",
	})
	DetectorVotesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bacbo",
		Name:      "detector_votes_total",
		Help:      "Total number of non-abstaining detector votes, by detector",
	}, []string{"detector"})
	FallbackPredictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bacbo",
		Name:      "fallback_predictions_total",
		Help:      "Total number of predictions produced by the fallback selector",
	})
)

// Gauge metrics
var (
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bacbo",
		Name:      "active_sessions",
		Help:      "Number of live prediction sessions",
	})
	SessionWinRate = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "bacbo",
		Name:      "session_win_rate",
		Help:      "Lifetime win rate percentage per session",
	}, []string{"session_id"})
)

// Histogram metrics
var (
	PredictionConfidence = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bacbo",
		Name:      "prediction_confidence",
		Help:      "Confidence scores of produced predictions",
		Buckets:   []float64{50, 58, 65, 75, 80, 85, 90, 95, 100},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(OutcomesRecordedTotal)
		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(PredictionHitsTotal)
		registry.MustRegister(PredictionMissesTotal)
		registry.MustRegister(DetectorVotesTotal)
		registry.MustRegister(FallbackPredictionsTotal)

		// Register gauge metrics
		registry.MustRegister(ActiveSessions)
		registry.MustRegister(SessionWinRate)

		// Register histogram metrics
		registry.MustRegister(PredictionConfidence)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordOutcome records an outcome ingestion event.
func RecordOutcome(outcome string) {
	OutcomesRecordedTotal.WithLabelValues(outcome).Inc()
}

// RecordPrediction records a produced prediction and its confidence.
func RecordPrediction(confidence float64) {
	PredictionsTotal.Inc()
	PredictionConfidence.Observe(confidence)
}

// RecordDetectorVote records a non-abstaining detector vote.
func RecordDetectorVote(detector string) {
	DetectorVotesTotal.WithLabelValues(detector).Inc()
}

// RecordFallback records a fallback prediction event.
func RecordFallback() {
	FallbackPredictionsTotal.Inc()
}

// RecordScored records the result of comparing a prediction to an outcome.
func RecordScored(hit bool) {
	if hit {
		PredictionHitsTotal.Inc()
	} else {
		PredictionMissesTotal.Inc()
	}
}

// UpdateActiveSessions updates the live session gauge.
func UpdateActiveSessions(count float64) {
	ActiveSessions.Set(count)
}

// UpdateSessionWinRate updates the per-session win rate gauge.
func UpdateSessionWinRate(sessionID string, winRate float64) {
	SessionWinRate.WithLabelValues(sessionID).Set(winRate)
}

// DropSessionWinRate removes the gauge series for a closed session.
func DropSessionWinRate(sessionID string) {
	SessionWinRate.DeleteLabelValues(sessionID)
}
