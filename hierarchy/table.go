package hierarchy

import (
	"github.com/cockroachdb/errors"

	"github.com/induct-org/induct/relation"
)

// ============================================================================
// TABLE HIERARCHY — Explicit Child→Parent Tree
// ============================================================================
// Nodes live in an arena slice with parent indices; values resolve through
// a value→node map built once at construction. No recursive references,
// O(1) leaf lookup.
//
// Usage:
//
//	cities, err := hierarchy.NewTable().
//	    Link("Toronto", "Canada").
//	    Link("Vancouver", "Canada").
//	    Link("Boston", "USA").
//	    Link("Canada", "ANY").
//	    Link("USA", "ANY").
//	    Build()
//
// Build validates that every value has exactly one parent and that parent
// chains are acyclic, so each value reaches its root by a unique path.
// ============================================================================

// TableBuilder accumulates child→parent links for a Table.
type TableBuilder struct {
	links []tableLink
}

type tableLink struct {
	child, parent relation.Value
}

// NewTable starts an empty table hierarchy builder.
func NewTable() *TableBuilder {
	return &TableBuilder{}
}

// Link declares that child generalizes to parent. Text labels.
func (b *TableBuilder) Link(child, parent string) *TableBuilder {
	return b.LinkValue(relation.Text(child), relation.Text(parent))
}

// LinkValue declares that child generalizes to parent, for non-text raw
// values (e.g. integer codes at level 0).
func (b *TableBuilder) LinkValue(child, parent relation.Value) *TableBuilder {
	b.links = append(b.links, tableLink{child: child, parent: parent})
	return b
}

// Build validates the links and constructs the immutable Table.
func (b *TableBuilder) Build() (*Table, error) {
	if len(b.links) == 0 {
		return nil, errors.New("table hierarchy has no links")
	}

	t := &Table{byValue: make(map[relation.Value]int, len(b.links)*2)}

	node := func(v relation.Value) int {
		if i, ok := t.byValue[v]; ok {
			return i
		}
		i := len(t.nodes)
		t.nodes = append(t.nodes, tableNode{label: v, parent: -1})
		t.byValue[v] = i
		return i
	}

	for _, l := range b.links {
		if l.child.IsMissing() || l.parent.IsMissing() {
			return nil, errors.New("table hierarchy cannot link Missing")
		}
		if l.child.Equal(l.parent) {
			return nil, errors.Newf("table hierarchy links %#v to itself", l.child)
		}
		c, p := node(l.child), node(l.parent)
		if existing := t.nodes[c].parent; existing != -1 && existing != p {
			return nil, errors.Newf("ambiguous generalization: %#v has parents %#v and %#v",
				l.child, t.nodes[existing].label, t.nodes[p].label)
		}
		t.nodes[c].parent = p
	}

	// Compute depths; a chain longer than the node count means a cycle.
	t.depths = make([]int, len(t.nodes))
	for i := range t.nodes {
		d := 0
		for j := t.nodes[i].parent; j != -1; j = t.nodes[j].parent {
			d++
			if d > len(t.nodes) {
				return nil, errors.Newf("table hierarchy has a cycle through %#v", t.nodes[i].label)
			}
		}
		t.depths[i] = d
	}

	return t, nil
}

// MustBuild is Build that panics on error. For fixtures and demos.
func (b *TableBuilder) MustBuild() *Table {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

// Table is an explicit value→label hierarchy. Read-only after Build.
type Table struct {
	nodes   []tableNode
	depths  []int
	byValue map[relation.Value]int
}

type tableNode struct {
	label  relation.Value
	parent int
}

// Generalize walks `level` parent links up from v, clamping at the root.
func (t *Table) Generalize(v relation.Value, level int) (relation.Value, error) {
	if v.IsMissing() {
		return v, nil
	}
	i, ok := t.byValue[v]
	if !ok {
		return relation.Missing(), unknownValue(v)
	}
	for ; level > 0 && t.nodes[i].parent != -1; level-- {
		i = t.nodes[i].parent
	}
	return t.nodes[i].label, nil
}

// Depth returns the number of parent links between v and its root.
func (t *Table) Depth(v relation.Value) (int, error) {
	if v.IsMissing() {
		return 0, nil
	}
	i, ok := t.byValue[v]
	if !ok {
		return 0, unknownValue(v)
	}
	return t.depths[i], nil
}

// DistinctCount counts the distinct labels the values generalize to at level.
func (t *Table) DistinctCount(values []relation.Value, level int) (int, error) {
	return distinctAt(t, values, level)
}

// Height returns the longest leaf-to-root path in the table.
func (t *Table) Height() int {
	max := 0
	for _, d := range t.depths {
		if d > max {
			max = d
		}
	}
	return max
}
