// Package induct provides an attribute-oriented induction engine.
// Compact generalized relations for any dataset.
//
// Usage:
//
//	import "github.com/induct-org/induct/engine"
//
//	result, err := engine.New(engine.WithLogger(log)).Run(rel, engine.Config{
//	    Attributes:          []string{"age", "city"},
//	    Hierarchies:         map[string]hierarchy.Hierarchy{"age": ages, "city": cities},
//	    AttributeThresholds: map[string]int{"age": 3, "city": 4},
//	    RelationThreshold:   10,
//	})
//
// The engine takes a relation (immutable tuples over a fixed attribute
// schema) and a concept hierarchy per selected attribute, climbs each
// attribute just far enough to satisfy its threshold, and merges tuples
// that became identical — producing generalized tuples annotated with
// merge counts and optional running-mean aggregates.
//
// Hierarchies are supplied as already-built structures; data ingestion
// and reporting are left to the caller. The engine never performs I/O —
// all computation is local and deterministic.
package induct
