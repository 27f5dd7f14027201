package analyzer

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/MMichael-S/request-log-analyzer/config"
	"github.com/MMichael-S/request-log-analyzer/reportio"
	"github.com/MMichael-S/request-log-analyzer/telemetry"
)

type settings struct {
	config            *config.Config
	logger            zerolog.Logger
	customLogger      bool
	collector         telemetry.Collector
	telemetryProvided bool
	exportPath        string
	output            reportio.Output
}

// Option configures the analyzer during construction.
type Option func(*settings) error

// WithLogger provides a custom logger instance for the analyzer.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *settings) error {
		if cfg == nil {
			return nil
		}
		cfg.logger = logger
		cfg.customLogger = true
		return nil
	}
}

// WithConfig supplies an already loaded configuration instance.
func WithConfig(cfgData *config.Config) Option {
	return func(cfg *settings) error {
		if cfg == nil {
			return nil
		}
		cfg.config = cfgData
		return nil
	}
}

// WithTelemetry injects a collector instance overriding the
// configuration-based behaviour.
func WithTelemetry(collector telemetry.Collector) Option {
	return func(cfg *settings) error {
		if cfg == nil {
			return nil
		}
		if collector == nil {
			collector = telemetry.Noop()
		}
		cfg.collector = collector
		cfg.telemetryProvided = true
		return nil
	}
}

// WithExportPath configures the YAML export file written after finalize.
func WithExportPath(path string) Option {
	return func(cfg *settings) error {
		if cfg == nil {
			return nil
		}
		cfg.exportPath = strings.TrimSpace(path)
		return nil
	}
}

// WithOutput directs the rendered report at the provided sink.
func WithOutput(output reportio.Output) Option {
	return func(cfg *settings) error {
		if cfg == nil {
			return nil
		}
		cfg.output = output
		return nil
	}
}
