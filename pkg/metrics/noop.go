//go:build !metrics

package metrics

import "context"

// NoopCollector is a no-op implementation when metrics are disabled.
// This file is only compiled when the 'metrics' build tag is NOT present.
type NoopCollector struct{}

// NewNoopCollector creates a no-op collector
func NewNoopCollector() *NoopCollector {
	return &NoopCollector{}
}

// RecordRequest does nothing when metrics are disabled
func (n *NoopCollector) RecordRequest(ctx context.Context, model string, status string, durationMs int64) {
}

// RecordTexts does nothing when metrics are disabled
func (n *NoopCollector) RecordTexts(ctx context.Context, model string, count int) {
}

// RecordError does nothing when metrics are disabled
func (n *NoopCollector) RecordError(ctx context.Context, model string, errorType string) {
}
