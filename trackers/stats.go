package trackers

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/MMichael-S/request-log-analyzer/export"
	"github.com/MMichael-S/request-log-analyzer/request"
)

// numericStats accumulates per-category statistics over a numeric field.
// Sums are kept as decimals so totals stay exact over long runs.
type numericStats struct {
	hits int64
	sum  decimal.Decimal
	min  decimal.Decimal
	max  decimal.Decimal
}

func (s *numericStats) add(value decimal.Decimal) {
	if s.hits == 0 || value.LessThan(s.min) {
		s.min = value
	}
	if s.hits == 0 || value.GreaterThan(s.max) {
		s.max = value
	}
	s.sum = s.sum.Add(value)
	s.hits++
}

func (s *numericStats) mean() decimal.Decimal {
	if s.hits == 0 {
		return decimal.Zero
	}
	return s.sum.Div(decimal.NewFromInt(s.hits))
}

func (s *numericStats) export() *export.Mapping {
	m := export.NewMapping()
	m.Set("hits", export.Integer(s.hits))
	m.Set("sum", decimalValue(s.sum))
	m.Set("min", decimalValue(s.min))
	m.Set("max", decimalValue(s.max))
	m.Set("mean", decimalValue(s.mean()))
	return m
}

func decimalValue(d decimal.Decimal) export.Value {
	if d.IsInteger() {
		return export.Integer(d.IntPart())
	}
	f, _ := d.Float64()
	return export.Number(f)
}

// categorizedTracker is the shared core of the duration and traffic
// trackers: a numeric value field grouped by category.
type categorizedTracker struct {
	filter     *filter
	categories map[string]*numericStats
}

func (t *categorizedTracker) Prepare() {
	t.categories = make(map[string]*numericStats)
}

func (t *categorizedTracker) ShouldUpdate(req *request.Request) bool {
	if !t.filter.shouldUpdate(req) {
		return false
	}
	return req.Has(t.filter.valueField)
}

func (t *categorizedTracker) Update(req *request.Request) error {
	value, ok := req.Decimal(t.filter.valueField)
	if !ok {
		return &FieldError{Field: t.filter.valueField, Tracker: t.filter.title}
	}
	category := t.filter.category(req)
	stats, ok := t.categories[category]
	if !ok {
		stats = &numericStats{}
		t.categories[category] = stats
	}
	stats.add(value)
	return nil
}

func (t *categorizedTracker) Finalize() {}

func (t *categorizedTracker) Title() string {
	return t.filter.title
}

// Export lists categories ordered by cumulative sum, highest first, so the
// heaviest categories lead the report.
func (t *categorizedTracker) Export() export.Value {
	names := make([]string, 0, len(t.categories))
	for name := range t.categories {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := t.categories[names[i]].sum, t.categories[names[j]].sum
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return names[i] < names[j]
	})
	m := export.NewMapping()
	for _, name := range names {
		m.Set(name, t.categories[name].export())
	}
	return m
}
