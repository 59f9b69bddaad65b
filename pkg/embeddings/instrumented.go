package embeddings

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dan-solli/ocigenai/pkg/metrics"
	"github.com/dan-solli/ocigenai/pkg/trace"
)

// Operation names used in logs and trace records
const (
	OpEmbed      = "embed"
	OpEmbedOne   = "embed_one"
	OpEmbedQuery = "embed_query"
)

// QueryEmbedder is implemented by clients that embed search queries differently from documents
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
}

// Instrumented wraps an EmbeddingClient with logging, metrics and tracing.
// Errors from the wrapped client are returned unchanged.
type Instrumented struct {
	inner   EmbeddingClient
	model   string
	logger  *slog.Logger
	metrics metrics.Collector
	tracer  trace.Exporter
}

// InstrumentOption configures an Instrumented client
type InstrumentOption func(*Instrumented)

// WithLogger sets the structured logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) InstrumentOption {
	return func(i *Instrumented) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector
func WithMetrics(c metrics.Collector) InstrumentOption {
	return func(i *Instrumented) {
		i.metrics = c
	}
}

// WithTracer sets the trace exporter
func WithTracer(e trace.Exporter) InstrumentOption {
	return func(i *Instrumented) {
		i.tracer = e
	}
}

// WithModel overrides the model label. Defaults to inner.Model() when available.
func WithModel(model string) InstrumentOption {
	return func(i *Instrumented) {
		i.model = model
	}
}

// NewInstrumented wraps inner
func NewInstrumented(inner EmbeddingClient, opts ...InstrumentOption) *Instrumented {
	i := &Instrumented{
		inner:  inner,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if m, ok := inner.(interface{ Model() string }); ok {
		i.model = m.Model()
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Embed generates embeddings for multiple texts
func (i *Instrumented) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	start := time.Now()
	embeddings, err := i.inner.Embed(ctx, texts)

	dims := 0
	if len(embeddings) > 0 {
		dims = len(embeddings[0])
	}
	i.observe(ctx, OpEmbed, start, len(texts), dims, err)

	return embeddings, err
}

// EmbedOne generates an embedding for a single text
func (i *Instrumented) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	embedding, err := i.inner.EmbedOne(ctx, text)
	i.observe(ctx, OpEmbedOne, start, 1, len(embedding), err)
	return embedding, err
}

// EmbedQuery embeds a search query. Falls back to EmbedOne when the wrapped
// client has no query-specific mode.
func (i *Instrumented) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	start := time.Now()

	var (
		embedding []float32
		err       error
	)
	if qe, ok := i.inner.(QueryEmbedder); ok {
		embedding, err = qe.EmbedQuery(ctx, query)
	} else {
		embedding, err = i.inner.EmbedOne(ctx, query)
	}
	i.observe(ctx, OpEmbedQuery, start, 1, len(embedding), err)

	return embedding, err
}

func (i *Instrumented) observe(ctx context.Context, op string, start time.Time, inputs, dims int, err error) {
	durationMs := time.Since(start).Milliseconds()

	status := "success"
	errType := ""
	if err != nil {
		status = "error"
		errType = ClassifyError(err)
	}

	if err != nil {
		i.logger.WarnContext(ctx, "embedding call failed",
			"operation", op,
			"model", i.model,
			"inputs", inputs,
			"duration_ms", durationMs,
			"error_type", errType,
			"error", err)
	} else {
		i.logger.DebugContext(ctx, "embedding call completed",
			"operation", op,
			"model", i.model,
			"inputs", inputs,
			"dimensions", dims,
			"duration_ms", durationMs)
	}

	if i.metrics != nil {
		i.metrics.RecordRequest(ctx, i.model, status, durationMs)
		if err != nil {
			i.metrics.RecordError(ctx, i.model, errType)
		} else {
			i.metrics.RecordTexts(ctx, i.model, inputs)
		}
	}

	if i.tracer != nil {
		record := &trace.TraceRecord{
			Timestamp:   start,
			OperationID: uuid.NewString(),
			Operation:   op,
			Model:       i.model,
			DurationMs:  durationMs,
			Status:      status,
			ErrorType:   errType,
			InputCount:  inputs,
			Dimensions:  dims,
		}
		if exportErr := i.tracer.Export(ctx, record); exportErr != nil {
			i.logger.WarnContext(ctx, "trace export failed", "operation", op, "error", exportErr)
		}
	}
}
