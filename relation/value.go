package relation

import (
	"fmt"
	"strconv"
)

// ============================================================================
// VALUE — Tagged Union Cell
// ============================================================================
// One relation cell: an integer, a float, a text label, or Missing.
// Missing is a first-class value, not an error — preprocessing tags it,
// the engine carries it through.
//
// Values are small, immutable, and comparable, so they key maps directly.
// ============================================================================

// Kind discriminates the variants of a Value.
type Kind int

const (
	KindMissing Kind = iota
	KindInt
	KindFloat
	KindText
)

// String returns the kind name used in errors and JSON output.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	default:
		return "missing"
	}
}

// Value is a single cell of a relation. The zero Value is Missing.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Int creates an integer Value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float creates a floating-point Value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Text creates a text Value. Concept labels are Text values.
func Text(v string) Value { return Value{kind: KindText, s: v} }

// Missing creates the Missing Value.
func Missing() Value { return Value{} }

// Kind returns the variant of the value.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is Missing.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Int returns the integer payload. Zero for other kinds.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload. Zero for other kinds.
func (v Value) Float() float64 { return v.f }

// Text returns the text payload. Empty for other kinds.
func (v Value) Text() string { return v.s }

// Number coerces the value to float64 for aggregation.
// Returns false for Text and Missing values.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	}
	return 0, false
}

// Equal reports exact equality — same kind, same payload.
// Int(3) and Float(3) are NOT equal.
func (v Value) Equal(o Value) bool { return v == o }

// String renders the value for display and error messages.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return v.s
	default:
		return "∅"
	}
}

// GoString renders the value with its kind, for unambiguous diagnostics.
func (v Value) GoString() string {
	switch v.kind {
	case KindMissing:
		return "relation.Missing()"
	case KindText:
		return fmt.Sprintf("relation.Text(%q)", v.s)
	case KindInt:
		return fmt.Sprintf("relation.Int(%d)", v.i)
	default:
		return fmt.Sprintf("relation.Float(%s)", strconv.FormatFloat(v.f, 'g', -1, 64))
	}
}
