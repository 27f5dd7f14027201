package summarizer

import "sort"

// WarningKind identifies a class of non-fatal anomalies recorded during
// aggregation.
type WarningKind string

const (
	// WarningNoCurrentRequest signals a log-ordering anomaly: a parsable
	// continuation line was encountered without a preceding header line.
	WarningNoCurrentRequest WarningKind = "no_current_request"

	// WarningUnclosedRequest signals a header line whose request never
	// completed before the next header appeared.
	WarningUnclosedRequest WarningKind = "unclosed_request"

	// WarningUnmatchedLine signals a line no known pattern matched.
	WarningUnmatchedLine WarningKind = "unmatched_request_line"
)

// WarningRegistry counts warnings by kind. Counts start at zero and only
// ever increase; messages and line numbers are not retained.
type WarningRegistry struct {
	counts map[WarningKind]int
}

// NewWarningRegistry creates an empty registry.
func NewWarningRegistry() *WarningRegistry {
	return &WarningRegistry{counts: make(map[WarningKind]int)}
}

// Increment raises the count for the kind by one.
func (r *WarningRegistry) Increment(kind WarningKind) {
	r.counts[kind]++
}

// Count returns the occurrences recorded for the kind.
func (r *WarningRegistry) Count(kind WarningKind) int {
	return r.counts[kind]
}

// Total returns the number of warnings recorded across all kinds.
func (r *WarningRegistry) Total() int {
	total := 0
	for _, count := range r.counts {
		total += count
	}
	return total
}

// Kinds returns the recorded kinds in stable sorted order.
func (r *WarningRegistry) Kinds() []WarningKind {
	kinds := make([]WarningKind, 0, len(r.counts))
	for kind := range r.counts {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
