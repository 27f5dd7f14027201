package trackers

import (
	"fmt"
)

// Spec declares a tracker: a registered type identifier plus its
// configuration record. Specs are accumulated during setup and consumed
// once at instantiation.
type Spec struct {
	Type    string
	Options Options
}

// Definer accumulates an ordered list of tracker declarations. The order
// of Track calls is the order trackers are driven through their lifecycle
// and the order they appear in the report and the export file.
type Definer struct {
	specs []Spec
}

// NewDefiner creates an empty declaration list.
func NewDefiner() *Definer {
	return &Definer{}
}

// Track appends a declaration for the given tracker type. Unknown types
// are rejected immediately so misconfigurations surface at setup time.
//
// Arguments may be a bare string, folded into the options under the
// reserved key "value" (the shorthand "track duration by response_time"),
// and an explicit Options record. Explicit options win over the shorthand.
func (d *Definer) Track(trackerType string, args ...any) error {
	if !Registered(trackerType) {
		return fmt.Errorf("%w: %s", ErrUnknownTracker, trackerType)
	}
	opts := make(Options)
	var explicit Options
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			opts[OptionValue] = v
		case Options:
			explicit = v
		case map[string]any:
			explicit = Options(v)
		case nil:
		default:
			return fmt.Errorf("track %s: unsupported argument %T", trackerType, arg)
		}
	}
	for key, value := range explicit {
		opts[key] = value
	}
	d.specs = append(d.specs, Spec{Type: trackerType, Options: opts})
	return nil
}

// Append adds an already-built spec, validating its type.
func (d *Definer) Append(spec Spec) error {
	if !Registered(spec.Type) {
		return fmt.Errorf("%w: %s", ErrUnknownTracker, spec.Type)
	}
	d.specs = append(d.specs, spec)
	return nil
}

// Specs returns a copy of the accumulated declarations in order.
func (d *Definer) Specs() []Spec {
	out := make([]Spec, len(d.specs))
	copy(out, d.specs)
	return out
}

// Reset empties the declaration list. Used when trackers are re-derived
// from a different configuration source.
func (d *Definer) Reset() {
	d.specs = nil
}

// Clone produces an independent definer carrying the same declarations.
// Option records are shallow-copied; instantiated trackers are never
// shared because specs only describe them.
func (d *Definer) Clone() *Definer {
	clone := &Definer{specs: make([]Spec, len(d.specs))}
	for i, spec := range d.specs {
		clone.specs[i] = Spec{Type: spec.Type, Options: spec.Options.Clone()}
	}
	return clone
}

// Instantiate constructs one tracker per declaration, in order.
func (d *Definer) Instantiate() ([]Tracker, error) {
	instances := make([]Tracker, 0, len(d.specs))
	for _, spec := range d.specs {
		tracker, err := Instantiate(spec.Type, spec.Options)
		if err != nil {
			return nil, fmt.Errorf("instantiate tracker %s: %w", spec.Type, err)
		}
		instances = append(instances, tracker)
	}
	return instances, nil
}
