package trackers

import "fmt"

// FieldError reports a request field that could not be coerced into the
// shape a tracker requires. Update failures propagate to the caller
// unmasked because suppressing them would silently corrupt statistics.
type FieldError struct {
	Field   string
	Tracker string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("tracker %q: field %q is not usable as a numeric value", e.Tracker, e.Field)
}
