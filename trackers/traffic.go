package trackers

// TrafficTracker accumulates per-category byte totals, typically response
// sizes reported by the server.
type TrafficTracker struct {
	categorizedTracker
}

func newTrafficTracker(opts Options) (Tracker, error) {
	f, err := newFilter("Traffic", "traffic", opts)
	if err != nil {
		return nil, err
	}
	return &TrafficTracker{categorizedTracker{filter: f}}, nil
}

func init() {
	Register("traffic", newTrafficTracker)
}
