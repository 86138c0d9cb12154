package web

import "github.com/prometheus/client_golang/prometheus"

// Estimate outcomes.
const (
	outcomeSuccess      = "success"
	outcomeFailure      = "prediction_error"
	outcomeInvalidInput = "invalid_input"
)

// Metrics tracks estimates served over HTTP.
type Metrics struct {
	Estimates      *prometheus.CounterVec
	PredictedSleep prometheus.Histogram
}

// EstimateCount provides metrics for estimates by outcome.
func EstimateCount() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betterrest_estimates_total",
			Help: "Total number of bedtime estimates",
		},
		[]string{"outcome"},
	)
}

// PredictedSleepHours provides the distribution of predicted sleep.
func PredictedSleepHours() prometheus.Histogram {
	return prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "betterrest_predicted_sleep_hours",
			Help:    "Predicted actual sleep in hours",
			Buckets: []float64{4, 5, 6, 7, 8, 9, 10, 11, 12},
		},
	)
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Estimates:      EstimateCount(),
		PredictedSleep: PredictedSleepHours(),
	}
	reg.MustRegister(m.Estimates, m.PredictedSleep)
	return m
}

func (m *Metrics) observe(outcome string, actualSleepSeconds float64) {
	if m == nil {
		return
	}
	m.Estimates.WithLabelValues(outcome).Inc()
	if outcome == outcomeSuccess {
		m.PredictedSleep.Observe(actualSleepSeconds / 3600)
	}
}
