// Package hierarchy provides concept hierarchies: trees mapping raw values
// to successively more abstract labels, one hierarchy per attribute.
//
// Two variants satisfy the same Hierarchy capability:
//
//   - Table — an explicit child→parent mapping (categorical attributes)
//   - RuleBased — ordered predicate→label rules, first-match-wins
//     (quantitative attributes; see EqualWidth for auto-generated buckets)
//
// Hierarchies are read-only after construction and safe to share across
// concurrent induction runs.
package hierarchy

import (
	"github.com/cockroachdb/errors"

	"github.com/induct-org/induct/relation"
)

// Hierarchy maps a raw or intermediate value to the concept label a number
// of levels above it.
type Hierarchy interface {
	// Generalize returns the label `level` steps above v. Level 0 returns
	// v unchanged. Levels beyond the value's depth clamp to the root —
	// there is nowhere higher to climb. Missing generalizes to Missing at
	// every level.
	Generalize(v relation.Value, level int) (relation.Value, error)

	// Depth returns the number of levels between v and its root: how far
	// the value can still climb. Zero for roots and Missing.
	Depth(v relation.Value) (int, error)

	// DistinctCount returns the number of distinct labels produced by
	// generalizing the given values to level. Used to test an attribute
	// threshold without materializing the whole relation.
	DistinctCount(values []relation.Value, level int) (int, error)
}

// ErrUnknownValue indicates a value with no path in the hierarchy.
// The raw domain is assumed fully enumerated, so an unknown value is a
// data-quality defect, not something to ignore silently.
var ErrUnknownValue = errors.New("value not present in hierarchy")

func unknownValue(v relation.Value) error {
	return errors.Wrapf(ErrUnknownValue, "%#v", v)
}

// distinctAt counts distinct generalization results over values.
// Shared by both variants.
func distinctAt(h Hierarchy, values []relation.Value, level int) (int, error) {
	seen := make(map[relation.Value]bool, len(values))
	for _, v := range values {
		label, err := h.Generalize(v, level)
		if err != nil {
			return 0, err
		}
		seen[label] = true
	}
	return len(seen), nil
}
