package engine

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/induct-org/induct/relation"
)

// ============================================================================
// INDUCTION ENGINE — Orchestrates Generalize → Aggregate → Threshold Loop
// ============================================================================
// Single run pipeline:
//   1. Validate input and config (fatal errors surface here, all-or-nothing)
//   2. Generalize each selected attribute independently (optionally parallel)
//   3. Aggregate: collapse tuples made identical by generalization
//   4. While the output exceeds the relation threshold, force the attribute
//      with the highest distinct count one level further and re-aggregate
//   5. Emit the generalized relation plus accumulated warnings
//
// The loop is a fixed-point iteration over a monotone lattice: levels only
// move up and the tuple count never increases, so finite hierarchy depth
// guarantees termination. Tuples are never dropped to force compliance.
// ============================================================================

// Engine runs attribute-oriented induction. Safe for concurrent use; each
// run owns its own derived state, and hierarchies are read-only.
type Engine struct {
	settings *settings
}

// New creates an engine.
//
// Options:
//   - WithLogger(logger) — structured progress logging
//   - WithParallelism(true) — concurrent per-attribute generalization
//   - WithMaxIterations(n) — defensive cap on the climb loop
func New(opts ...Option) *Engine {
	return &Engine{settings: applyOptions(opts)}
}

// Run executes one induction run over rel. The input relation is read-only;
// fatal errors return no partial result, warnings accompany a valid one.
func (e *Engine) Run(rel *relation.Relation, cfg Config) (*Result, error) {
	log := e.settings.logger

	if err := validate(rel, cfg); err != nil {
		return nil, err
	}

	log.Debug("induction run starting",
		zap.Int("tuples", rel.Len()),
		zap.Strings("attributes", cfg.Attributes),
		zap.Int("relation_threshold", cfg.RelationThreshold))

	// ── Generalize: independent per attribute ────────────────────────────
	plans, err := e.planAttributes(rel, cfg)
	if err != nil {
		return nil, err
	}

	result := &Result{Levels: make(map[string]int, len(plans))}
	for _, p := range plans {
		if !p.satisfied() {
			result.Warnings = append(result.Warnings, Warning{
				Kind:      ThresholdUnsatisfiable,
				Attribute: p.attr,
				Detail: fmt.Sprintf("%d distinct labels at hierarchy root, threshold %d",
					p.distinct, p.threshold),
			})
			log.Warn("attribute threshold unsatisfiable at root",
				zap.String("attribute", p.attr),
				zap.Int("distinct", p.distinct),
				zap.Int("threshold", p.threshold))
		}
		log.Debug("attribute generalized",
			zap.String("attribute", p.attr),
			zap.Int("level", p.level),
			zap.Int("distinct", p.distinct))
	}

	// ── Aggregate ─────────────────────────────────────────────────────────
	tuples := aggregate(rel, plans, cfg.Aggregates)

	// ── CheckRelationThreshold: climb until compact or exhausted ─────────
	for len(tuples) > cfg.RelationThreshold {
		if result.Climbs >= e.settings.maxIterations {
			return nil, errors.Newf("climb loop exceeded %d iterations; hierarchy depths may be unbounded",
				e.settings.maxIterations)
		}

		next := pickClimbable(plans)
		if next == nil {
			result.Warnings = append(result.Warnings, Warning{
				Kind: RelationThresholdUnsatisfiable,
				Detail: fmt.Sprintf("%d tuples with every attribute at its root, threshold %d",
					len(tuples), cfg.RelationThreshold),
			})
			log.Warn("relation threshold unsatisfiable",
				zap.Int("tuples", len(tuples)),
				zap.Int("threshold", cfg.RelationThreshold))
			break
		}

		if err := next.climb(); err != nil {
			return nil, err
		}
		result.Climbs++
		tuples = aggregate(rel, plans, cfg.Aggregates)

		log.Debug("forced climb",
			zap.String("attribute", next.attr),
			zap.Int("level", next.level),
			zap.Int("distinct", next.distinct),
			zap.Int("tuples", len(tuples)))
	}

	// ── Done ──────────────────────────────────────────────────────────────
	for _, p := range plans {
		result.Levels[p.attr] = p.level
	}
	result.Tuples = tuples
	schema, err := outputSchema(rel.Schema(), plans)
	if err != nil {
		return nil, err
	}
	result.Schema = schema

	log.Info("induction run complete",
		zap.Int("input_tuples", rel.Len()),
		zap.Int("output_tuples", len(tuples)),
		zap.Int("climbs", result.Climbs),
		zap.Int("warnings", len(result.Warnings)))

	return result, nil
}

// planAttributes runs the generalizer per selected attribute, concurrently
// when enabled. Plans land at their projection index, so the outcome is
// identical either way.
func (e *Engine) planAttributes(rel *relation.Relation, cfg Config) ([]*attributePlan, error) {
	plans := make([]*attributePlan, len(cfg.Attributes))

	if !e.settings.parallel {
		for i, attr := range cfg.Attributes {
			p, err := planAttribute(rel, attr, cfg.Hierarchies[attr], cfg.attributeThreshold(attr))
			if err != nil {
				return nil, err
			}
			plans[i] = p
		}
		return plans, nil
	}

	var g errgroup.Group
	for i, attr := range cfg.Attributes {
		i, attr := i, attr
		g.Go(func() error {
			p, err := planAttribute(rel, attr, cfg.Hierarchies[attr], cfg.attributeThreshold(attr))
			if err != nil {
				return err
			}
			plans[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plans, nil
}

// pickClimbable selects the attribute to force one level further: highest
// current distinct count among attributes not yet at their root, ties
// broken by projection order. Returns nil when every attribute is
// exhausted.
func pickClimbable(plans []*attributePlan) *attributePlan {
	var best *attributePlan
	for _, p := range plans {
		if p.exhausted() {
			continue
		}
		if best == nil || p.distinct > best.distinct {
			best = p
		}
	}
	return best
}

// outputSchema builds the projection schema: generalized attributes become
// Categorical (their values are concept labels), pass-through attributes
// keep their declared kind.
func outputSchema(in *relation.Schema, plans []*attributePlan) (*relation.Schema, error) {
	attrs := make([]relation.Attribute, len(plans))
	for i, p := range plans {
		kind := relation.Categorical
		if p.hier == nil {
			kind, _ = in.KindOf(p.attr)
		}
		attrs[i] = relation.Attribute{Name: p.attr, Kind: kind}
	}
	return relation.NewSchema(attrs...)
}

// validate rejects malformed runs up front — fatal, no partial result.
func validate(rel *relation.Relation, cfg Config) error {
	if rel == nil || rel.Len() == 0 {
		return ErrEmptyRelation
	}
	if len(cfg.Attributes) == 0 {
		return errors.Wrap(ErrInvalidConfig, "no attributes selected")
	}
	if cfg.RelationThreshold < 1 {
		return errors.Wrapf(ErrInvalidConfig, "relation threshold %d must be positive",
			cfg.RelationThreshold)
	}

	schema := rel.Schema()
	seen := make(map[string]bool, len(cfg.Attributes))
	for _, attr := range cfg.Attributes {
		if !schema.Has(attr) {
			return errors.Wrapf(ErrInvalidConfig, "attribute %q not in schema", attr)
		}
		if seen[attr] {
			return errors.Wrapf(ErrInvalidConfig, "attribute %q selected twice", attr)
		}
		seen[attr] = true
		if cfg.Hierarchies[attr] != nil && cfg.attributeThreshold(attr) < 1 {
			return errors.Wrapf(ErrInvalidConfig, "attribute %q has a hierarchy but no positive threshold", attr)
		}
	}
	for attr := range cfg.Hierarchies {
		if !seen[attr] {
			return errors.Wrapf(ErrInvalidConfig, "hierarchy for %q, which is not a selected attribute", attr)
		}
	}
	for _, attr := range cfg.Aggregates {
		kind, ok := schema.KindOf(attr)
		if !ok {
			return errors.Wrapf(ErrInvalidConfig, "aggregate %q not in schema", attr)
		}
		if kind != relation.Quantitative {
			return errors.Wrapf(ErrInvalidConfig, "aggregate %q is not quantitative", attr)
		}
		if seen[attr] {
			return errors.Wrapf(ErrInvalidConfig, "aggregate %q is also a grouping attribute", attr)
		}
	}
	return nil
}
