package summarizer

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/MMichael-S/request-log-analyzer/export"
	"github.com/MMichael-S/request-log-analyzer/reportio"
	"github.com/MMichael-S/request-log-analyzer/request"
	"github.com/MMichael-S/request-log-analyzer/telemetry"
	"github.com/MMichael-S/request-log-analyzer/trackers"
)

var (
	// ErrNoTrackers aborts a run whose source declared no trackers. An
	// aggregation pass without analyzers is a configuration mistake, not
	// an empty result.
	ErrNoTrackers = errors.New("no trackers registered for aggregation")

	// ErrLifecycle marks calls that violate the one-directional lifecycle,
	// such as aggregating before Prepare or finalizing twice. These are
	// programming errors and fail fast.
	ErrLifecycle = errors.New("summarizer lifecycle violation")
)

type phase int

const (
	phaseCreated phase = iota
	phasePrepared
	phaseAggregating
	phaseFinalized
	phaseReported
)

func (p phase) String() string {
	switch p {
	case phaseCreated:
		return "created"
	case phasePrepared:
		return "prepared"
	case phaseAggregating:
		return "aggregating"
	case phaseFinalized:
		return "finalized"
	case phaseReported:
		return "reported"
	default:
		return "unknown"
	}
}

// Summarizer drives the ordered tracker set through the aggregation
// lifecycle: Prepare, one Aggregate per request, Finalize, then export and
// report. Trackers run in registration order end to end.
//
// The summarizer is single-threaded by construction; one caller drives the
// entire lifecycle as a linear sequence of calls.
type Summarizer struct {
	source    reportio.Source
	trackers  []trackers.Tracker
	warnings  *WarningRegistry
	logger    zerolog.Logger
	collector telemetry.Collector

	exportPath string
	phase      phase
}

// Option configures the summarizer during construction.
type Option func(*Summarizer)

// WithLogger provides a custom logger instance.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Summarizer) {
		s.logger = logger
	}
}

// WithTelemetry injects a collector for aggregation metrics.
func WithTelemetry(collector telemetry.Collector) Option {
	return func(s *Summarizer) {
		if collector == nil {
			collector = telemetry.Noop()
		}
		s.collector = collector
	}
}

// WithExportPath configures the file the serialized tracker state is
// written to during Finalize.
func WithExportPath(path string) Option {
	return func(s *Summarizer) {
		s.exportPath = path
	}
}

// New builds a summarizer for the source, instantiating the trackers its
// file format declares. Unresolvable tracker types abort construction.
func New(source reportio.Source, opts ...Option) (*Summarizer, error) {
	if source == nil {
		return nil, errors.New("source must not be nil")
	}
	s := &Summarizer{
		source:    source,
		warnings:  NewWarningRegistry(),
		logger:    zerolog.Nop(),
		collector: telemetry.Noop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	definer := trackers.NewDefiner()
	for _, spec := range source.FileFormat().ReportTrackers() {
		if err := definer.Append(spec); err != nil {
			return nil, err
		}
	}
	instances, err := definer.Instantiate()
	if err != nil {
		return nil, err
	}
	s.trackers = instances
	return s, nil
}

// Trackers returns the tracker instances in registration order.
func (s *Summarizer) Trackers() []trackers.Tracker {
	out := make([]trackers.Tracker, len(s.trackers))
	copy(out, s.trackers)
	return out
}

// Prepare initializes every tracker in registration order. An empty
// tracker list aborts the run before any request is processed.
func (s *Summarizer) Prepare() error {
	if s.phase != phaseCreated {
		return fmt.Errorf("%w: prepare called in phase %s", ErrLifecycle, s.phase)
	}
	if len(s.trackers) == 0 {
		return ErrNoTrackers
	}
	for _, tracker := range s.trackers {
		tracker.Prepare()
	}
	s.phase = phasePrepared
	s.logger.Debug().Int("trackers", len(s.trackers)).Msg("summarizer prepared")
	return nil
}

// Aggregate offers the request to every tracker exactly once, in
// registration order. A tracker's Update runs only when its own
// ShouldUpdate predicate accepts the request. Tracker update failures
// propagate unmasked.
func (s *Summarizer) Aggregate(req *request.Request) error {
	switch s.phase {
	case phasePrepared:
		s.phase = phaseAggregating
	case phaseAggregating:
	default:
		return fmt.Errorf("%w: aggregate called in phase %s", ErrLifecycle, s.phase)
	}
	s.collector.IncRequest()
	for _, tracker := range s.trackers {
		if !tracker.ShouldUpdate(req) {
			continue
		}
		if err := tracker.Update(req); err != nil {
			return fmt.Errorf("tracker %q update: %w", tracker.Title(), err)
		}
		s.collector.IncTrackerUpdate(tracker.Title())
	}
	return nil
}

// Finalize completes every tracker in registration order and, when an
// export path is configured, writes the serialized export. An export I/O
// failure is surfaced but does not invalidate the completed aggregation.
func (s *Summarizer) Finalize() error {
	switch s.phase {
	case phasePrepared, phaseAggregating:
	default:
		return fmt.Errorf("%w: finalize called in phase %s", ErrLifecycle, s.phase)
	}
	for _, tracker := range s.trackers {
		tracker.Finalize()
	}
	s.phase = phaseFinalized
	if s.exportPath != "" {
		if err := s.SaveExport(s.exportPath); err != nil {
			return err
		}
	}
	return nil
}

// Warning records a non-fatal anomaly by kind. The message and line
// number are logged for external consumers but not retained; only counts
// are aggregated.
func (s *Summarizer) Warning(kind WarningKind, message string, line int) {
	s.warnings.Increment(kind)
	s.collector.IncWarning(string(kind))
	s.logger.Debug().
		Str("kind", string(kind)).
		Int("line", line).
		Msg(message)
}

// HasWarnings reports whether any warning was recorded.
func (s *Summarizer) HasWarnings() bool {
	return s.warnings.Total() > 0
}

// HasLogOrderingWarnings reports whether the log-ordering anomaly was
// recorded at least once.
func (s *Summarizer) HasLogOrderingWarnings() bool {
	return s.warnings.Count(WarningNoCurrentRequest) > 0
}

// Warnings exposes the warning registry.
func (s *Summarizer) Warnings() *WarningRegistry {
	return s.warnings
}

// ExportState assembles the mapping from each tracker's title to its own
// exported representation, in registration order. Tracker-internal data is
// opaque to the summarizer.
func (s *Summarizer) ExportState() *export.Mapping {
	state := export.NewMapping()
	for _, tracker := range s.trackers {
		state.Set(tracker.Title(), tracker.Export())
	}
	return state
}

// SaveExport serializes the export mapping and writes it to path,
// overwriting existing content. Failures surface as I/O errors.
func (s *Summarizer) SaveExport(path string) error {
	if err := export.WriteFile(path, s.ExportState()); err != nil {
		return err
	}
	s.logger.Info().Str("path", path).Msg("tracker state exported")
	return nil
}
