package engine

import (
	"strconv"
	"strings"

	"github.com/induct-org/induct/relation"
)

// ============================================================================
// AGGREGATOR — Collapse Duplicate Generalized Tuples
// ============================================================================
// Two tuples merge iff their labels agree on every attribute in the output
// projection (exact equality, schema-fixed order). Output order is first
// occurrence of each generalized key in the input relation — stable,
// deterministic, independent of map iteration.
//
// Aggregate means are computed incrementally (mean += (x-mean)/n) so large
// inputs neither overflow nor lose precision to naive summation.
// ============================================================================

// aggregate merges the generalized projection of rel into generalized
// tuples. plans are in output-projection order; aggAttrs name quantitative
// attributes reported as means.
func aggregate(rel *relation.Relation, plans []*attributePlan, aggAttrs []string) []relation.GeneralizedTuple {
	schema := rel.Schema()

	keyCols := make([]int, len(plans))
	for i, p := range plans {
		keyCols[i], _ = schema.Index(p.attr)
	}
	aggCols := make([]int, len(aggAttrs))
	for i, attr := range aggAttrs {
		aggCols[i], _ = schema.Index(attr)
	}

	type groupState struct {
		out   int // index into the output slice
		means []float64
		ns    []int
	}

	groups := make(map[string]*groupState)
	var out []relation.GeneralizedTuple
	var key strings.Builder

	for row := 0; row < rel.Len(); row++ {
		t := rel.Tuple(row)

		labels := make([]relation.Value, len(plans))
		key.Reset()
		for i, p := range plans {
			label := p.apply(t.Value(keyCols[i]))
			labels[i] = label
			writeValueKey(&key, label)
		}

		g, ok := groups[key.String()]
		if !ok {
			g = &groupState{
				out:   len(out),
				means: make([]float64, len(aggAttrs)),
				ns:    make([]int, len(aggAttrs)),
			}
			groups[key.String()] = g
			out = append(out, relation.GeneralizedTuple{Values: labels})
		}
		out[g.out].Count++

		for i, col := range aggCols {
			x, isNum := t.Value(col).Number()
			if !isNum {
				continue // Missing (or non-numeric) observations are skipped
			}
			g.ns[i]++
			g.means[i] += (x - g.means[i]) / float64(g.ns[i])
		}
	}

	if len(aggAttrs) > 0 {
		for _, g := range groups {
			aggs := make(map[string]float64, len(aggAttrs))
			for i, attr := range aggAttrs {
				if g.ns[i] > 0 {
					aggs[attr] = g.means[i]
				}
			}
			if len(aggs) > 0 {
				out[g.out].Aggregates = aggs
			}
		}
	}

	return out
}

// writeValueKey appends an unambiguous encoding of a value to a group key:
// kind tag, payload length, payload. The kind tag keeps Int(1), Float(1) and
// Text("1") apart; the length prefix keeps field boundaries fixed no matter
// what bytes a text label contains.
func writeValueKey(b *strings.Builder, v relation.Value) {
	var payload string
	switch v.Kind() {
	case relation.KindInt:
		payload = strconv.FormatInt(v.Int(), 10)
	case relation.KindFloat:
		payload = strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case relation.KindText:
		payload = v.Text()
	}
	b.WriteByte(byte('0' + int(v.Kind())))
	b.WriteString(strconv.Itoa(len(payload)))
	b.WriteByte(':')
	b.WriteString(payload)
}
