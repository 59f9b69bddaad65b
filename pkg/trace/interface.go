package trace

import (
	"context"
	"time"
)

// Exporter defines the interface for exporting embedding call traces.
// Implementations must be safe for concurrent use.
type Exporter interface {
	// Export writes a trace record to the configured destination.
	Export(ctx context.Context, record *TraceRecord) error

	// Close flushes any buffered records and releases resources.
	Close() error
}

// TraceRecord describes one embedding call.
// It never contains input text or vector values.
type TraceRecord struct {
	// Timestamp is the call start time
	Timestamp time.Time `json:"timestamp"`

	// OperationID uniquely identifies this call (for correlation)
	OperationID string `json:"operationId"`

	// Operation is "embed", "embed_one" or "embed_query"
	Operation string `json:"operation"`

	// Model is the model ID or dedicated endpoint OCID
	Model string `json:"model"`

	// DurationMs is the total call duration in milliseconds
	DurationMs int64 `json:"durationMs"`

	// Status is "success" or "error"
	Status string `json:"status"`

	// ErrorType classifies the error (if Status == "error")
	ErrorType string `json:"errorType,omitempty"`

	// InputCount is the number of texts sent
	InputCount int `json:"inputCount"`

	// Dimensions is the length of the returned vectors, 0 when none were returned
	Dimensions int `json:"dimensions,omitempty"`
}

// FileExporterOption configures a FileExporter.
// This type is available in both tracing and non-tracing builds to maintain API compatibility.
type FileExporterOption func(interface{})
