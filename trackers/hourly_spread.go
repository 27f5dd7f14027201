package trackers

import (
	"fmt"

	"github.com/MMichael-S/request-log-analyzer/export"
	"github.com/MMichael-S/request-log-analyzer/request"
)

// HourlySpreadTracker buckets requests by hour of day, showing how load
// distributes over a day.
type HourlySpreadTracker struct {
	filter  *filter
	buckets [24]int64
	total   int64
}

func newHourlySpreadTracker(opts Options) (Tracker, error) {
	f, err := newFilter("Hourly spread", "timestamp", opts)
	if err != nil {
		return nil, err
	}
	return &HourlySpreadTracker{filter: f}, nil
}

func (t *HourlySpreadTracker) Prepare() {
	t.buckets = [24]int64{}
	t.total = 0
}

func (t *HourlySpreadTracker) ShouldUpdate(req *request.Request) bool {
	if !t.filter.shouldUpdate(req) {
		return false
	}
	_, ok := req.Time(t.filter.valueField)
	return ok
}

func (t *HourlySpreadTracker) Update(req *request.Request) error {
	ts, ok := req.Time(t.filter.valueField)
	if !ok {
		return nil
	}
	t.buckets[ts.Hour()]++
	t.total++
	return nil
}

func (t *HourlySpreadTracker) Finalize() {}

func (t *HourlySpreadTracker) Title() string {
	return t.filter.title
}

// Export maps every hour to its request count, zero hours included, so
// downstream tooling sees a complete 24 entry spread.
func (t *HourlySpreadTracker) Export() export.Value {
	m := export.NewMapping()
	for hour, count := range t.buckets {
		m.Set(fmt.Sprintf("%02d:00", hour), export.Integer(count))
	}
	return m
}

func init() {
	Register("hourly_spread", newHourlySpreadTracker)
}
