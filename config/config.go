package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LokiConfig configures optional Loki integration for logging.
type LokiConfig struct {
	Enabled bool              `yaml:"enabled"`
	URL     string            `yaml:"url"`
	Labels  map[string]string `yaml:"labels"`
}

// LoggingConfig encapsulates runtime logging options.
type LoggingConfig struct {
	Level  string     `yaml:"level"`
	Format string     `yaml:"format"`
	Loki   LokiConfig `yaml:"loki"`
}

// TelemetryConfig toggles the Prometheus collector.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// TrackerDecl declares one tracker in registration order. The common
// options have dedicated keys; tracker-specific extras go into Options.
type TrackerDecl struct {
	Type     string         `yaml:"type"`
	Value    string         `yaml:"value,omitempty"`
	Title    string         `yaml:"title,omitempty"`
	Category string         `yaml:"category,omitempty"`
	If       string         `yaml:"if,omitempty"`
	Unless   string         `yaml:"unless,omitempty"`
	LineType string         `yaml:"line_type,omitempty"`
	Options  map[string]any `yaml:"options,omitempty"`
}

// Config is the root run configuration for the aggregation engine.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Format    string          `yaml:"format,omitempty"`
	Trackers  []TrackerDecl   `yaml:"trackers"`
	YAML      string          `yaml:"yaml,omitempty"`
}

// Load reads the configuration file, validates it against the embedded
// schema and decodes it.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(raw)
}

// Parse validates and decodes raw configuration bytes.
func Parse(raw []byte) (*Config, error) {
	if err := validateSchema(raw); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
