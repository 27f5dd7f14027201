package trackers

// DurationTracker accumulates per-category statistics over a numeric
// duration field, typically the total time spent serving a request.
type DurationTracker struct {
	categorizedTracker
}

func newDurationTracker(opts Options) (Tracker, error) {
	f, err := newFilter("Request duration", "duration", opts)
	if err != nil {
		return nil, err
	}
	return &DurationTracker{categorizedTracker{filter: f}}, nil
}

func init() {
	Register("duration", newDurationTracker)
}
