package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request represents a single parsed log entry flowing through the
// aggregation engine. Fields hold the values extracted by the upstream
// parser, keyed by field name.
type Request struct {
	Timestamp  time.Time
	LineNumber int
	Source     string
	Fields     map[string]any
}

// New creates a request around the provided field map. A nil map is
// replaced with an empty one so lookups never panic.
func New(fields map[string]any) *Request {
	if fields == nil {
		fields = make(map[string]any)
	}
	return &Request{Fields: fields}
}

// Has reports whether the named field carries a non-nil value.
func (r *Request) Has(field string) bool {
	if r == nil {
		return false
	}
	value, ok := r.Fields[field]
	return ok && value != nil
}

// Field returns the raw field value.
func (r *Request) Field(field string) (any, bool) {
	if r == nil {
		return nil, false
	}
	value, ok := r.Fields[field]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// String returns the field rendered as a string.
func (r *Request) String(field string) (string, bool) {
	value, ok := r.Field(field)
	if !ok {
		return "", false
	}
	switch v := value.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	default:
		return "", false
	}
}

// Number coerces the field into a float64.
func (r *Request) Number(field string) (float64, bool) {
	value, ok := r.Field(field)
	if !ok {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint32:
		return float64(v), true
	case decimal.Decimal:
		f, _ := v.Float64()
		return f, true
	case time.Duration:
		return v.Seconds(), true
	default:
		return 0, false
	}
}

// Decimal coerces the field into an arbitrary precision decimal. Trackers
// accumulate sums with decimals so long runs do not drift.
func (r *Request) Decimal(field string) (decimal.Decimal, bool) {
	value, ok := r.Field(field)
	if !ok {
		return decimal.Zero, false
	}
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case int32:
		return decimal.NewFromInt32(v), true
	case uint64:
		return decimal.NewFromUint64(v), true
	case uint32:
		return decimal.NewFromInt(int64(v)), true
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, false
		}
		return parsed, true
	default:
		return decimal.Zero, false
	}
}

// Bool coerces the field into a boolean.
func (r *Request) Bool(field string) (bool, bool) {
	value, ok := r.Field(field)
	if !ok {
		return false, false
	}
	switch v := value.(type) {
	case bool:
		return v, true
	case int:
		return v != 0, true
	case int64:
		return v != 0, true
	case float64:
		return v != 0, true
	default:
		return false, false
	}
}

// Time returns the request timestamp, falling back to a time-typed field
// when the header timestamp was not set by the parser.
func (r *Request) Time(field string) (time.Time, bool) {
	if r == nil {
		return time.Time{}, false
	}
	if !r.Timestamp.IsZero() {
		return r.Timestamp, true
	}
	value, ok := r.Field(field)
	if !ok {
		return time.Time{}, false
	}
	if ts, ok := value.(time.Time); ok && !ts.IsZero() {
		return ts, true
	}
	return time.Time{}, false
}

// Env exposes the request to expression evaluation. Field values are
// merged with the request metadata under reserved names.
func (r *Request) Env() map[string]any {
	env := make(map[string]any, len(r.Fields)+2)
	for key, value := range r.Fields {
		env[key] = value
	}
	env["line_number"] = r.LineNumber
	if !r.Timestamp.IsZero() {
		env["timestamp"] = r.Timestamp
	}
	return env
}
