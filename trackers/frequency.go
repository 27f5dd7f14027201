package trackers

import (
	"sort"

	"github.com/MMichael-S/request-log-analyzer/export"
	"github.com/MMichael-S/request-log-analyzer/request"
)

// FrequencyTracker counts how often each value of a field occurs, for
// example HTTP methods or status codes.
type FrequencyTracker struct {
	filter *filter
	counts map[string]int64
}

func newFrequencyTracker(opts Options) (Tracker, error) {
	f, err := newFilter("Frequency", "", opts)
	if err != nil {
		return nil, err
	}
	// A bare value shorthand doubles as the category for frequency
	// counting.
	if f.categoryField == "" {
		f.categoryField = f.valueField
	}
	return &FrequencyTracker{filter: f}, nil
}

func (t *FrequencyTracker) Prepare() {
	t.counts = make(map[string]int64)
}

func (t *FrequencyTracker) ShouldUpdate(req *request.Request) bool {
	if !t.filter.shouldUpdate(req) {
		return false
	}
	if t.filter.categoryField == "" {
		return false
	}
	return req.Has(t.filter.categoryField)
}

func (t *FrequencyTracker) Update(req *request.Request) error {
	t.counts[t.filter.category(req)]++
	return nil
}

func (t *FrequencyTracker) Finalize() {}

func (t *FrequencyTracker) Title() string {
	if t.filter.title != "" {
		return t.filter.title
	}
	return "Frequency"
}

// Export lists categories ordered by count, highest first.
func (t *FrequencyTracker) Export() export.Value {
	names := make([]string, 0, len(t.counts))
	for name := range t.counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if t.counts[names[i]] != t.counts[names[j]] {
			return t.counts[names[i]] > t.counts[names[j]]
		}
		return names[i] < names[j]
	})
	m := export.NewMapping()
	for _, name := range names {
		m.Set(name, export.Integer(t.counts[name]))
	}
	return m
}

func init() {
	Register("frequency", newFrequencyTracker)
}
