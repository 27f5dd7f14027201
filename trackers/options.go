package trackers

// OptionValue is the reserved option key used when a bare field name is
// passed positionally to Definer.Track.
const OptionValue = "value"

// Options carries the configuration record for a tracker declaration.
// Recognized keys are tracker-specific; the common filter options are
// handled in newFilter.
type Options map[string]any

// String returns the option rendered as a string.
func (o Options) String(key string) (string, bool) {
	value, ok := o[key]
	if !ok || value == nil {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// Int returns the option coerced to an int.
func (o Options) Int(key string) (int, bool) {
	value, ok := o[key]
	if !ok || value == nil {
		return 0, false
	}
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// Bool returns the option coerced to a bool.
func (o Options) Bool(key string) (bool, bool) {
	value, ok := o[key]
	if !ok || value == nil {
		return false, false
	}
	b, ok := value.(bool)
	return b, ok
}

// Clone returns a shallow copy of the option record.
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	out := make(Options, len(o))
	for key, value := range o {
		out[key] = value
	}
	return out
}
