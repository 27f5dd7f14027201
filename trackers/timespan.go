package trackers

import (
	"time"

	"github.com/MMichael-S/request-log-analyzer/export"
	"github.com/MMichael-S/request-log-analyzer/request"
)

// TimespanTracker records the first and last timestamp observed in the
// request stream and reports the covered timespan.
type TimespanTracker struct {
	filter *filter
	first  time.Time
	last   time.Time
}

func newTimespanTracker(opts Options) (Tracker, error) {
	f, err := newFilter("Timespan", "timestamp", opts)
	if err != nil {
		return nil, err
	}
	return &TimespanTracker{filter: f}, nil
}

func (t *TimespanTracker) Prepare() {
	t.first = time.Time{}
	t.last = time.Time{}
}

func (t *TimespanTracker) ShouldUpdate(req *request.Request) bool {
	if !t.filter.shouldUpdate(req) {
		return false
	}
	_, ok := req.Time(t.filter.valueField)
	return ok
}

func (t *TimespanTracker) Update(req *request.Request) error {
	ts, ok := req.Time(t.filter.valueField)
	if !ok {
		return nil
	}
	if t.first.IsZero() || ts.Before(t.first) {
		t.first = ts
	}
	if t.last.IsZero() || ts.After(t.last) {
		t.last = ts
	}
	return nil
}

func (t *TimespanTracker) Finalize() {}

func (t *TimespanTracker) Title() string {
	return t.filter.title
}

func (t *TimespanTracker) Export() export.Value {
	m := export.NewMapping()
	if t.first.IsZero() {
		return m
	}
	m.Set("first", export.String(t.first.Format(time.RFC3339)))
	m.Set("last", export.String(t.last.Format(time.RFC3339)))
	m.Set("timespan_seconds", export.Integer(int64(t.last.Sub(t.first)/time.Second)))
	return m
}

func init() {
	Register("timespan", newTimespanTracker)
}
