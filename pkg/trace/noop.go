//go:build !tracing

package trace

import "context"

// NoopExporter is a zero-overhead exporter that does nothing.
// Used when tracing is disabled at build time.
type NoopExporter struct{}

// NewFileExporter returns a no-op exporter when tracing is disabled.
func NewFileExporter(filePath string, opts ...FileExporterOption) (Exporter, error) {
	return &NoopExporter{}, nil
}

// WithMaxSize is accepted and ignored when tracing is disabled.
func WithMaxSize(bytes int64) FileExporterOption {
	return func(interface{}) {}
}

// WithMaxRotatedFiles is accepted and ignored when tracing is disabled.
func WithMaxRotatedFiles(count int) FileExporterOption {
	return func(interface{}) {}
}

// Export does nothing.
func (n *NoopExporter) Export(ctx context.Context, record *TraceRecord) error {
	return nil
}

// Close does nothing.
func (n *NoopExporter) Close() error {
	return nil
}
