package engine

import (
	"github.com/cockroachdb/errors"

	"github.com/induct-org/induct/hierarchy"
	"github.com/induct-org/induct/relation"
)

// ============================================================================
// GENERALIZER — Minimal-Level Search Per Attribute
// ============================================================================
// For one attribute, find the minimal level L (starting at 0, never
// skipping) such that the distinct-label count at L fits the attribute
// threshold. The search reads only the attribute's own distinct values —
// attributes are independent during this phase.
//
// If no level satisfies the threshold, the root is accepted anyway (there
// is nowhere higher to climb); the engine reports ThresholdUnsatisfiable.
// ============================================================================

// attributePlan is the generalization state for one selected attribute:
// the chosen level and the deterministic raw-value → label mapping at it.
type attributePlan struct {
	attr      string
	hier      hierarchy.Hierarchy // nil = pass-through
	threshold int

	level    int
	maxDepth int // deepest observed value; the root level for this column
	distinct int

	observed []relation.Value // distinct raw values, first-occurrence order
	firstRow map[relation.Value]int
	mapping  map[relation.Value]relation.Value
}

// planAttribute observes an attribute's column and chooses its minimal
// adequate generalization level.
func planAttribute(rel *relation.Relation, attr string, h hierarchy.Hierarchy, threshold int) (*attributePlan, error) {
	col, err := rel.Column(attr)
	if err != nil {
		return nil, err
	}

	p := &attributePlan{
		attr:      attr,
		hier:      h,
		threshold: threshold,
		firstRow:  make(map[relation.Value]int),
		mapping:   make(map[relation.Value]relation.Value),
	}
	for row, v := range col {
		if _, seen := p.firstRow[v]; !seen {
			p.firstRow[v] = row
			p.observed = append(p.observed, v)
		}
	}

	if h == nil {
		// Pass-through: carried unchanged, no levels to climb.
		p.distinct = len(p.observed)
		for _, v := range p.observed {
			p.mapping[v] = v
		}
		return p, nil
	}

	for _, v := range p.observed {
		d, err := h.Depth(v)
		if err != nil {
			return nil, newUnknownValueError(attr, p.firstRow[v], v, err)
		}
		if d > p.maxDepth {
			p.maxDepth = d
		}
	}

	for level := 0; ; level++ {
		n, err := h.DistinctCount(p.observed, level)
		if err != nil {
			return nil, errors.Wrapf(err, "attribute %q level %d", attr, level)
		}
		if n <= threshold || level >= p.maxDepth {
			p.level = level
			p.distinct = n
			break
		}
	}

	return p, p.rebuildMapping()
}

// rebuildMapping materializes the raw→label function at the current level.
// Deterministic and total over the observed values.
func (p *attributePlan) rebuildMapping() error {
	for _, v := range p.observed {
		label, err := p.hier.Generalize(v, p.level)
		if err != nil {
			return newUnknownValueError(p.attr, p.firstRow[v], v, err)
		}
		p.mapping[v] = label
	}
	return nil
}

// apply maps one raw value to its label at the chosen level.
func (p *attributePlan) apply(v relation.Value) relation.Value {
	return p.mapping[v]
}

// exhausted reports whether the attribute has reached its hierarchy root.
func (p *attributePlan) exhausted() bool {
	return p.hier == nil || p.level >= p.maxDepth
}

// satisfied reports whether the attribute threshold holds at the current
// level. Pass-through attributes carry no threshold.
func (p *attributePlan) satisfied() bool {
	return p.hier == nil || p.distinct <= p.threshold
}

// climb forces the attribute one level further up its hierarchy.
// Called by the relation-threshold loop; never called on exhausted plans.
func (p *attributePlan) climb() error {
	if p.exhausted() {
		return errors.Newf("attribute %q already at hierarchy root", p.attr)
	}
	p.level++
	n, err := p.hier.DistinctCount(p.observed, p.level)
	if err != nil {
		return errors.Wrapf(err, "attribute %q level %d", p.attr, p.level)
	}
	p.distinct = n
	return p.rebuildMapping()
}
