package hierarchy

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/induct-org/induct/relation"
)

// ============================================================================
// RULE-BASED HIERARCHY — Ordered Predicates, First Match Wins
// ============================================================================
// For quantitative attributes the raw domain is not enumerable, so level 1
// is defined by an ordered rule list instead of an explicit table:
//
//	ages := hierarchy.NewRuleBased("ANY",
//	    hierarchy.Rule{Label: "Young", Match: hierarchy.LessThan(25)},
//	    hierarchy.Rule{Label: "Middle-Aged", Match: hierarchy.LessThan(60)},
//	    hierarchy.Rule{Label: "Senior", Match: hierarchy.Any()},
//	)
//
// Levels: 0 = the raw value, 1 = the first matching rule's label,
// 2 = the root. Rule labels and the root are themselves valid inputs
// (intermediate values), so re-generalizing engine output works.
// ============================================================================

// Rule pairs a predicate with the concept label it generalizes to.
type Rule struct {
	Label string
	Match func(relation.Value) bool
}

// RuleBased is a two-level hierarchy over a non-enumerable domain.
// Read-only after construction.
type RuleBased struct {
	rules  []Rule
	root   relation.Value
	labels map[relation.Value]bool
}

// NewRuleBased builds a rule hierarchy. Rules are evaluated in order and
// the first match wins. An empty root defaults to "ANY".
//
// Rule labels (and the root) must be disjoint from the raw domain: a raw
// value equal to a label is taken for the label itself and generalizes to
// the root at level 1 instead of passing through the rules.
func NewRuleBased(root string, rules ...Rule) *RuleBased {
	if root == "" {
		root = "ANY"
	}
	h := &RuleBased{
		rules:  rules,
		root:   relation.Text(root),
		labels: make(map[relation.Value]bool, len(rules)),
	}
	for _, r := range rules {
		h.labels[relation.Text(r.Label)] = true
	}
	return h
}

// Generalize maps v to its label `level` steps up, clamping at the root.
func (h *RuleBased) Generalize(v relation.Value, level int) (relation.Value, error) {
	if v.IsMissing() || level == 0 {
		return v, nil
	}
	if v.Equal(h.root) {
		return v, nil
	}
	if h.labels[v] {
		return h.root, nil // level >= 1 from an intermediate label
	}
	label, ok := h.match(v)
	if !ok {
		return relation.Missing(), unknownValue(v)
	}
	if level == 1 {
		return label, nil
	}
	return h.root, nil
}

// Depth returns 2 for raw values, 1 for rule labels, 0 for the root.
func (h *RuleBased) Depth(v relation.Value) (int, error) {
	switch {
	case v.IsMissing(), v.Equal(h.root):
		return 0, nil
	case h.labels[v]:
		return 1, nil
	}
	if _, ok := h.match(v); !ok {
		return 0, unknownValue(v)
	}
	return 2, nil
}

// DistinctCount counts the distinct labels the values generalize to at level.
func (h *RuleBased) DistinctCount(values []relation.Value, level int) (int, error) {
	return distinctAt(h, values, level)
}

func (h *RuleBased) match(v relation.Value) (relation.Value, bool) {
	for _, r := range h.rules {
		if r.Match(v) {
			return relation.Text(r.Label), true
		}
	}
	return relation.Missing(), false
}

// ============================================================================
// PREDICATES
// ============================================================================

// LessThan matches numeric values strictly below the bound.
func LessThan(bound float64) func(relation.Value) bool {
	return func(v relation.Value) bool {
		x, ok := v.Number()
		return ok && x < bound
	}
}

// Between matches numeric values in [lo, hi).
func Between(lo, hi float64) func(relation.Value) bool {
	return func(v relation.Value) bool {
		x, ok := v.Number()
		return ok && x >= lo && x < hi
	}
}

// AtLeast matches numeric values at or above the bound.
func AtLeast(bound float64) func(relation.Value) bool {
	return func(v relation.Value) bool {
		x, ok := v.Number()
		return ok && x >= bound
	}
}

// Any matches every numeric value. Use as the final catch-all rule: it
// closes the numeric domain without absorbing text values, which stay
// outside the hierarchy and fail with ErrUnknownValue.
func Any() func(relation.Value) bool {
	return func(v relation.Value) bool {
		_, ok := v.Number()
		return ok
	}
}

// ============================================================================
// EQUAL-WIDTH BUCKETS
// ============================================================================

// EqualWidth builds a rule hierarchy of n equal-width buckets over [min, max].
// Bucket labels read "[lo, hi)"; the last bucket is closed at max. Values
// outside the range have no path and fail with ErrUnknownValue — the caller
// declared [min, max] as the attribute's domain.
func EqualWidth(min, max float64, n int) (*RuleBased, error) {
	if n < 1 {
		return nil, errors.Newf("equal-width buckets: n must be positive, got %d", n)
	}
	if !(min < max) {
		return nil, errors.Newf("equal-width buckets: min %g must be below max %g", min, max)
	}
	width := (max - min) / float64(n)
	rules := make([]Rule, n)
	for i := 0; i < n; i++ {
		lo := min + width*float64(i)
		hi := lo + width
		if i == n-1 {
			rules[i] = Rule{
				Label: fmt.Sprintf("[%g, %g]", lo, max),
				Match: func(v relation.Value) bool {
					x, ok := v.Number()
					return ok && x >= lo && x <= max
				},
			}
			continue
		}
		rules[i] = Rule{Label: fmt.Sprintf("[%g, %g)", lo, hi), Match: Between(lo, hi)}
	}
	return NewRuleBased("ANY", rules...), nil
}
