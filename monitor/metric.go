// Package monitor exposes Prometheus metrics for the generation pipeline.
package monitor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	relaymodel "github.com/handboekai/handboek-api/relay/model"
)

const namespace = "handboek"

var (
	generationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "total",
			Help:      "Total number of chapter generation requests",
		},
		[]string{"model", "outcome"},
	)

	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "Chapter generation duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"model"},
	)

	tokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tokens",
			Name:      "total",
			Help:      "Total tokens consumed, split by direction",
		},
		[]string{"model", "direction"},
	)

	shareResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "share",
			Name:      "resolutions_total",
			Help:      "Share link resolutions by result",
		},
		[]string{"result"},
	)
)

// RecordGeneration counts one generation attempt. Outcome is one of ok,
// empty, connect_error, upstream_error.
func RecordGeneration(model string, outcome string, elapsed time.Duration) {
	generationTotal.WithLabelValues(model, outcome).Inc()
	generationDuration.WithLabelValues(model).Observe(elapsed.Seconds())
}

// RecordTokens accounts the usage an upstream call reported (or our estimate
// when the upstream sent none).
func RecordTokens(model string, usage *relaymodel.Usage) {
	if usage == nil {
		return
	}
	tokensTotal.WithLabelValues(model, "prompt").Add(float64(usage.PromptTokens))
	tokensTotal.WithLabelValues(model, "completion").Add(float64(usage.CompletionTokens))
}

// RecordShareResolution counts share page lookups: hit, miss or expired.
func RecordShareResolution(result string) {
	shareResolutions.WithLabelValues(result).Inc()
}
