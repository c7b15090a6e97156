package relation

import (
	"github.com/cockroachdb/errors"
)

// ============================================================================
// RELATION — Ordered Multiset of Immutable Tuples
// ============================================================================
// The engine's input. Tuples are immutable once appended; generalization
// produces new relations and generalized tuples, never in-place mutation.
// Tuple order is significant: output ordering is first-occurrence of each
// generalized key in this order.
// ============================================================================

// Tuple is one row. Values are laid out in schema order.
// Tuples are immutable — accessors return copies where needed.
type Tuple struct {
	values []Value
}

// Len returns the number of values in the tuple.
func (t Tuple) Len() int { return len(t.values) }

// Value returns the value at schema position i.
func (t Tuple) Value(i int) Value { return t.values[i] }

// Values returns a copy of the tuple's values in schema order.
func (t Tuple) Values() []Value {
	out := make([]Value, len(t.values))
	copy(out, t.values)
	return out
}

// Relation is an ordered sequence of tuples over a shared schema.
type Relation struct {
	schema *Schema
	tuples []Tuple
}

// New creates an empty relation over the given schema.
func New(schema *Schema) *Relation {
	return &Relation{schema: schema}
}

// Schema returns the shared attribute schema.
func (r *Relation) Schema() *Schema { return r.schema }

// Len returns the number of tuples.
func (r *Relation) Len() int { return len(r.tuples) }

// Tuple returns the tuple at row i.
func (r *Relation) Tuple(i int) Tuple { return r.tuples[i] }

// Value returns the value at (row, attribute name).
func (r *Relation) Value(row int, attr string) (Value, bool) {
	i, ok := r.schema.Index(attr)
	if !ok || row < 0 || row >= len(r.tuples) {
		return Missing(), false
	}
	return r.tuples[row].values[i], true
}

// Append adds a tuple given as a name→value mapping. Attributes absent
// from the mapping are stored as Missing; names outside the schema fail.
func (r *Relation) Append(values map[string]Value) error {
	row := make([]Value, r.schema.Len())
	for name, v := range values {
		i, ok := r.schema.Index(name)
		if !ok {
			return errors.Wrapf(ErrUnknownAttribute, "append: %q", name)
		}
		row[i] = v
	}
	r.tuples = append(r.tuples, Tuple{values: row})
	return nil
}

// AppendRow adds a tuple given positionally in schema order.
func (r *Relation) AppendRow(values ...Value) error {
	if len(values) != r.schema.Len() {
		return errors.Newf("append row: got %d values, schema has %d attributes",
			len(values), r.schema.Len())
	}
	row := make([]Value, len(values))
	copy(row, values)
	r.tuples = append(r.tuples, Tuple{values: row})
	return nil
}

// Column returns the values of one attribute across all tuples, in row order.
func (r *Relation) Column(attr string) ([]Value, error) {
	i, ok := r.schema.Index(attr)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownAttribute, "column: %q", attr)
	}
	out := make([]Value, len(r.tuples))
	for row, t := range r.tuples {
		out[row] = t.values[i]
	}
	return out, nil
}

// ============================================================================
// GENERALIZED TUPLE — Engine Output Row
// ============================================================================

// GeneralizedTuple is an aggregated output row: concept labels in output
// schema order, the number of source tuples merged into it, and optional
// running-mean aggregates for quantitative attributes that were requested
// but not used as grouping keys.
type GeneralizedTuple struct {
	Values     []Value            `json:"values"`
	Count      int                `json:"count"`
	Aggregates map[string]float64 `json:"aggregates,omitempty"`
}
