package export

// Value is a generic tagged tree describing tracker state for
// serialization. Trackers export heterogeneous data (counts, nested
// groupings, text), so the summarizer handles their state as an opaque
// structure of primitives instead of a fixed schema.
type Value interface {
	isValue()
}

// Null represents an absent value.
type Null struct{}

// Number represents a floating point value.
type Number float64

// Integer represents a signed integer value.
type Integer int64

// String represents a plain UTF-8 string.
type String string

// Sequence represents an ordered list of values.
type Sequence []Value

// Mapping represents key/value pairs with stable insertion order. The
// report and the export file both present trackers in registration order,
// so ordering is part of the contract.
type Mapping struct {
	keys   []string
	values map[string]Value
}

func (Null) isValue()     {}
func (Number) isValue()   {}
func (Integer) isValue()  {}
func (String) isValue()   {}
func (Sequence) isValue() {}
func (*Mapping) isValue() {}

// NewMapping creates an empty ordered mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Value)}
}

// Set stores the value under key, appending the key on first use and
// replacing the value in place afterwards.
func (m *Mapping) Set(key string, value Value) *Mapping {
	if value == nil {
		value = Null{}
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	value, ok := m.values[key]
	return value, ok
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.keys)
}
