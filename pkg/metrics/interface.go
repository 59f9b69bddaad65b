package metrics

import "context"

// Collector is the interface for metrics collection.
// Implementations include the Prometheus-backed collector and the no-op collector
// (default build without the metrics tag).
type Collector interface {
	RecordRequest(ctx context.Context, model string, status string, durationMs int64)
	RecordTexts(ctx context.Context, model string, count int)
	RecordError(ctx context.Context, model string, errorType string)
}
