package config

import (
	"fmt"

	"github.com/MMichael-S/request-log-analyzer/reportio"
	"github.com/MMichael-S/request-log-analyzer/trackers"
)

type declaredFormat struct {
	name  string
	specs []trackers.Spec
}

func (f *declaredFormat) Name() string {
	return f.name
}

func (f *declaredFormat) ReportTrackers() []trackers.Spec {
	out := make([]trackers.Spec, len(f.specs))
	copy(out, f.specs)
	return out
}

// FileFormat adapts the configured tracker declarations into a file
// format the summarizer can consume. Unknown tracker types are rejected
// here, before any request is processed.
func (c *Config) FileFormat() (reportio.FileFormat, error) {
	definer := trackers.NewDefiner()
	for i, decl := range c.Trackers {
		if decl.Type == "" {
			return nil, fmt.Errorf("tracker declaration %d: type is required", i)
		}
		opts := make(trackers.Options, len(decl.Options)+6)
		for key, value := range decl.Options {
			opts[key] = value
		}
		setOption(opts, trackers.OptionValue, decl.Value)
		setOption(opts, "title", decl.Title)
		setOption(opts, "category", decl.Category)
		setOption(opts, "if", decl.If)
		setOption(opts, "unless", decl.Unless)
		setOption(opts, "line_type", decl.LineType)
		if err := definer.Track(decl.Type, opts); err != nil {
			return nil, fmt.Errorf("tracker declaration %d: %w", i, err)
		}
	}
	name := c.Format
	if name == "" {
		name = "custom"
	}
	return &declaredFormat{name: name, specs: definer.Specs()}, nil
}

func setOption(opts trackers.Options, key, value string) {
	if value != "" {
		opts[key] = value
	}
}
