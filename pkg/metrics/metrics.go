package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector provides Prometheus metrics collection for embedding calls
type MetricsCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	textsTotal      *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	registry        *prometheus.Registry
}

// NewCollector creates a new Prometheus metrics collector
func NewCollector() *MetricsCollector {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ocigenai_embed_requests_total",
			Help: "Total number of embedding calls by model and status",
		},
		[]string{"model", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ocigenai_embed_duration_seconds",
			Help:    "Duration of embedding calls by model",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
		},
		[]string{"model"},
	)

	textsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ocigenai_embed_texts_total",
			Help: "Total number of texts embedded successfully by model",
		},
		[]string{"model"},
	)

	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ocigenai_embed_errors_total",
			Help: "Total number of embedding errors by model and error type",
		},
		[]string{"model", "error_type"},
	)

	registry.MustRegister(requestsTotal)
	registry.MustRegister(requestDuration)
	registry.MustRegister(textsTotal)
	registry.MustRegister(errorsTotal)

	return &MetricsCollector{
		requestsTotal:   requestsTotal,
		requestDuration: requestDuration,
		textsTotal:      textsTotal,
		errorsTotal:     errorsTotal,
		registry:        registry,
	}
}

// RecordRequest records a completed embedding call and its duration
func (m *MetricsCollector) RecordRequest(ctx context.Context, model string, status string, durationMs int64) {
	m.requestsTotal.WithLabelValues(model, status).Inc()
	m.requestDuration.WithLabelValues(model).Observe(float64(durationMs) / 1000.0)
}

// RecordTexts adds count to the number of texts embedded successfully
func (m *MetricsCollector) RecordTexts(ctx context.Context, model string, count int) {
	m.textsTotal.WithLabelValues(model).Add(float64(count))
}

// RecordError records an error occurrence
func (m *MetricsCollector) RecordError(ctx context.Context, model string, errorType string) {
	m.errorsTotal.WithLabelValues(model, errorType).Inc()
}

// Registry returns the Prometheus registry for HTTP exposure
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}
