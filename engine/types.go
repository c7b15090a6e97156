package engine

import (
	"github.com/induct-org/induct/hierarchy"
	"github.com/induct-org/induct/relation"
)

// ============================================================================
// ENGINE TYPES — Run Configuration and Output
// ============================================================================

// Config defines one induction run: which attributes to keep, how each may
// generalize, and how compact the output must be. Supplied once per run and
// never mutated by the engine.
type Config struct {
	// Attributes is the output projection, in output order. Attributes
	// with a hierarchy are generalized; the rest pass through unchanged
	// and still participate in tuple identity.
	Attributes []string `json:"attributes"`

	// Hierarchies maps attribute name → concept hierarchy. Optional per
	// attribute.
	Hierarchies map[string]hierarchy.Hierarchy `json:"-"`

	// AttributeThresholds caps the distinct values allowed per attribute
	// after generalization. DefaultAttributeThreshold fills gaps. Every
	// attribute with a hierarchy must resolve to a positive threshold.
	AttributeThresholds       map[string]int `json:"attributeThresholds,omitempty"`
	DefaultAttributeThreshold int            `json:"defaultAttributeThreshold,omitempty"`

	// RelationThreshold caps the tuple count of the final output.
	RelationThreshold int `json:"relationThreshold"`

	// Aggregates lists quantitative attributes to report as running means.
	// They must not appear in Attributes — aggregates are computed over
	// each merged group, not used as grouping keys.
	Aggregates []string `json:"aggregates,omitempty"`
}

// attributeThreshold resolves the threshold for one attribute.
func (c Config) attributeThreshold(attr string) int {
	if t, ok := c.AttributeThresholds[attr]; ok && t > 0 {
		return t
	}
	return c.DefaultAttributeThreshold
}

// ============================================================================
// WARNINGS — Recoverable Conditions
// ============================================================================

// WarningKind names a recoverable condition.
type WarningKind string

const (
	// ThresholdUnsatisfiable: an attribute's distinct count exceeds its
	// threshold even at the hierarchy root. The root is accepted anyway.
	ThresholdUnsatisfiable WarningKind = "threshold_unsatisfiable"

	// RelationThresholdUnsatisfiable: the output tuple count exceeds the
	// relation threshold even with every attribute at its root. The
	// best-effort result is returned — tuples are never dropped.
	RelationThresholdUnsatisfiable WarningKind = "relation_threshold_unsatisfiable"
)

// Warning describes a recoverable condition encountered during a run.
type Warning struct {
	Kind      WarningKind `json:"kind"`
	Attribute string      `json:"attribute,omitempty"`
	Detail    string      `json:"detail"`
}

// ============================================================================
// RESULT — Generalized Relation Plus Run Metadata
// ============================================================================

// Result is the engine's output: the generalized relation and the warnings
// accumulated while producing it.
type Result struct {
	// Schema is the output projection. Generalized attributes become
	// Categorical (their values are concept labels); pass-through
	// attributes keep their declared kind.
	Schema *relation.Schema `json:"-"`

	// Tuples are ordered by first occurrence of their generalized key in
	// the input relation.
	Tuples []relation.GeneralizedTuple `json:"tuples"`

	Warnings []Warning `json:"warnings,omitempty"`

	// Levels is the final generalization level per selected attribute.
	Levels map[string]int `json:"levels"`

	// Climbs counts forced climbs taken by the relation-threshold loop.
	Climbs int `json:"climbs"`
}

// InputCount returns the number of source tuples represented by the result.
// Always equals the input relation's length — no tuple is lost or
// double-counted.
func (r *Result) InputCount() int {
	total := 0
	for _, t := range r.Tuples {
		total += t.Count
	}
	return total
}
