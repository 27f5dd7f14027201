package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/MMichael-S/request-log-analyzer/internal/logging"
	"github.com/MMichael-S/request-log-analyzer/reportio"
	"github.com/MMichael-S/request-log-analyzer/summarizer"
	"github.com/MMichael-S/request-log-analyzer/telemetry"
)

// Analyzer ties the aggregation engine together: it builds a summarizer
// for a source, pulls the request stream to completion, finalizes the
// trackers and renders the report.
type Analyzer struct {
	logger     zerolog.Logger
	cleanup    func()
	collector  telemetry.Collector
	exportPath string
	output     reportio.Output
}

// New constructs an analyzer from the provided options.
func New(opts ...Option) (*Analyzer, error) {
	cfg := settings{
		collector: telemetry.Noop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	a := &Analyzer{
		collector:  cfg.collector,
		exportPath: cfg.exportPath,
		output:     cfg.output,
		cleanup:    func() {},
	}

	switch {
	case cfg.customLogger:
		a.logger = cfg.logger
	case cfg.config != nil:
		logger, cleanup, err := logging.Setup(cfg.config.Logging)
		if err != nil {
			return nil, fmt.Errorf("setup logging: %w", err)
		}
		a.logger = logger
		a.cleanup = cleanup
	default:
		a.logger = zerolog.Nop()
	}

	if cfg.config != nil {
		if a.exportPath == "" {
			a.exportPath = cfg.config.YAML
		}
		if !cfg.telemetryProvided && cfg.config.Telemetry.Enabled {
			collector, err := telemetry.NewPrometheusCollector(nil)
			if err != nil {
				return nil, fmt.Errorf("setup telemetry: %w", err)
			}
			a.collector = collector
		}
	}

	if a.output == nil {
		a.output = reportio.NewTextOutput(os.Stdout)
	}
	return a, nil
}

// Run drives one full aggregation pass over the stream and returns the
// summarizer carrying the accumulated state. An export failure during
// finalize is returned after the report is rendered, so completed
// aggregation results are not lost.
func (a *Analyzer) Run(ctx context.Context, source reportio.Source, stream reportio.RequestStream) (*summarizer.Summarizer, error) {
	s, err := summarizer.New(source,
		summarizer.WithLogger(a.logger),
		summarizer.WithTelemetry(a.collector),
		summarizer.WithExportPath(a.exportPath),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Prepare(); err != nil {
		return nil, err
	}

	for {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return s, ctx.Err()
			default:
			}
		}
		req, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return s, fmt.Errorf("read request stream: %w", err)
		}
		if req == nil {
			continue
		}
		if err := s.Aggregate(req); err != nil {
			return s, err
		}
	}

	finalizeErr := s.Finalize()
	if finalizeErr != nil && errors.Is(finalizeErr, summarizer.ErrLifecycle) {
		return s, finalizeErr
	}
	if err := s.Report(a.output); err != nil {
		return s, err
	}
	if finalizeErr != nil {
		a.logger.Error().Err(finalizeErr).Msg("export failed")
		return s, finalizeErr
	}
	return s, nil
}

// Close releases resources held by the logging pipeline.
func (a *Analyzer) Close() {
	if a.cleanup != nil {
		a.cleanup()
	}
}
