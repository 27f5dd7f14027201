package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector captures telemetry events emitted during aggregation.
//
// Implementations may forward metrics to Prometheus, loggers or other
// monitoring systems. They should be inexpensive to call because hooks are
// executed inline with the per-request aggregation path.
type Collector interface {
	IncRequest()
	IncWarning(kind string)
	IncTrackerUpdate(tracker string)
}

type noopCollector struct{}

// Noop returns a collector that discards all metrics.
func Noop() Collector {
	return noopCollector{}
}

func (noopCollector) IncRequest()             {}
func (noopCollector) IncWarning(string)       {}
func (noopCollector) IncTrackerUpdate(string) {}

// PrometheusCollector exposes aggregation counters via Prometheus.
type PrometheusCollector struct {
	requests       prometheus.Counter
	warnings       *prometheus.CounterVec
	trackerUpdates *prometheus.CounterVec
}

var (
	requestCounter           prometheus.Counter
	requestCounterLock       sync.Mutex
	warningCounter           *prometheus.CounterVec
	warningCounterLock       sync.Mutex
	trackerUpdateCounter     *prometheus.CounterVec
	trackerUpdateCounterLock sync.Mutex
)

// NewPrometheusCollector registers the required metrics with the provided registerer.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	requestCounterLock.Lock()
	if requestCounter == nil {
		counter := prometheus.NewCounter(prometheus.CounterOpts{
			Name: "request_log_analyzer_requests_aggregated_total",
			Help: "Number of requests offered to the tracker set.",
		})
		if err := reg.Register(counter); err != nil {
			if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
				if existing, ok := already.ExistingCollector.(prometheus.Counter); ok {
					requestCounter = existing
				} else {
					requestCounterLock.Unlock()
					return nil, err
				}
			} else {
				requestCounterLock.Unlock()
				return nil, err
			}
		} else {
			requestCounter = counter
		}
	}
	requestCounterLock.Unlock()

	warningCounterLock.Lock()
	if warningCounter == nil {
		counter := prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "request_log_analyzer_warnings_total",
			Help: "Number of warnings recorded during aggregation, by kind.",
		}, []string{"kind"})
		if err := reg.Register(counter); err != nil {
			if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
				if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
					warningCounter = existing
				} else {
					warningCounterLock.Unlock()
					return nil, err
				}
			} else {
				warningCounterLock.Unlock()
				return nil, err
			}
		} else {
			warningCounter = counter
		}
	}
	warningCounterLock.Unlock()

	trackerUpdateCounterLock.Lock()
	if trackerUpdateCounter == nil {
		counter := prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "request_log_analyzer_tracker_updates_total",
			Help: "Number of tracker updates performed, by tracker title.",
		}, []string{"tracker"})
		if err := reg.Register(counter); err != nil {
			if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
				if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
					trackerUpdateCounter = existing
				} else {
					trackerUpdateCounterLock.Unlock()
					return nil, err
				}
			} else {
				trackerUpdateCounterLock.Unlock()
				return nil, err
			}
		} else {
			trackerUpdateCounter = counter
		}
	}
	trackerUpdateCounterLock.Unlock()

	return &PrometheusCollector{
		requests:       requestCounter,
		warnings:       warningCounter,
		trackerUpdates: trackerUpdateCounter,
	}, nil
}

// IncRequest counts a request offered to the tracker set.
func (p *PrometheusCollector) IncRequest() {
	if p == nil || p.requests == nil {
		return
	}
	p.requests.Inc()
}

// IncWarning counts a recorded warning by kind.
func (p *PrometheusCollector) IncWarning(kind string) {
	if p == nil || p.warnings == nil {
		return
	}
	p.warnings.WithLabelValues(kind).Inc()
}

// IncTrackerUpdate counts an accepted update for the named tracker.
func (p *PrometheusCollector) IncTrackerUpdate(tracker string) {
	if p == nil || p.trackerUpdates == nil {
		return
	}
	p.trackerUpdates.WithLabelValues(tracker).Inc()
}
