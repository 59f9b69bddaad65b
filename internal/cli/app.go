package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dan-solli/ocigenai/internal/config"
	"github.com/dan-solli/ocigenai/pkg/embeddings"
	"github.com/dan-solli/ocigenai/pkg/metrics"
	"github.com/dan-solli/ocigenai/pkg/trace"
)

// app holds the wired embedding client and its observability sinks for one command run.
type app struct {
	cfg         *config.Config
	logger      *slog.Logger
	embedder    *embeddings.Instrumented
	metrics     *metrics.MetricsCollector
	tracer      trace.Exporter
	metricsFile string
}

func newApp(opts *rootOptions, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(opts.v, opts.configPath)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		return nil, err
	}

	ociCfg, err := cfg.OCIConfig()
	if err != nil {
		return nil, err
	}

	client, err := embeddings.NewOCIClient(ociCfg, opts.embedder)
	if err != nil {
		return nil, fmt.Errorf("create OCI client: %w", err)
	}

	collector := metrics.NewCollector()
	instrumentOpts := []embeddings.InstrumentOption{
		embeddings.WithLogger(logger),
		embeddings.WithMetrics(collector),
	}

	var tracer trace.Exporter
	if cfg.TracePath != "" {
		tracer, err = trace.NewFileExporter(cfg.TracePath)
		if err != nil {
			return nil, err
		}
		instrumentOpts = append(instrumentOpts, embeddings.WithTracer(tracer))
	}

	logger.Debug("embedding client ready",
		"model", ociCfg.ModelName,
		"endpoint", ociCfg.ServiceEndpoint,
		"auth_type", string(ociCfg.AuthType))

	return &app{
		cfg:         cfg,
		logger:      logger,
		embedder:    embeddings.NewInstrumented(client, instrumentOpts...),
		metrics:     collector,
		tracer:      tracer,
		metricsFile: opts.metricsFile,
	}, nil
}

func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.Log.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.Log.Format)
	}
}

// Close flushes traces and writes the metrics file if requested.
func (a *app) Close() error {
	var errs []error
	if a.tracer != nil {
		errs = append(errs, a.tracer.Close())
	}
	if a.metricsFile != "" {
		if err := prometheus.WriteToTextfile(a.metricsFile, a.metrics.Registry()); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	return errors.Join(errs...)
}
