package relation

import (
	"github.com/cockroachdb/errors"
)

// ============================================================================
// SCHEMA — Ordered Attribute Declarations
// ============================================================================
// Every tuple in a relation shares one schema. Attribute order is fixed at
// construction and drives tuple layout, output projection, and tie-breaks.
// ============================================================================

// AttributeKind classifies an attribute for the engine.
type AttributeKind int

const (
	// Categorical attributes hold labels; they group and generalize.
	Categorical AttributeKind = iota
	// Quantitative attributes hold numbers; they aggregate, and generalize
	// only through a bucketing hierarchy.
	Quantitative
)

// String returns the kind name.
func (k AttributeKind) String() string {
	if k == Quantitative {
		return "quantitative"
	}
	return "categorical"
}

// Attribute declares one column: a name and its kind.
type Attribute struct {
	Name string        `json:"name" yaml:"name"`
	Kind AttributeKind `json:"kind" yaml:"kind"`
}

// Schema is an ordered sequence of attribute declarations.
type Schema struct {
	attrs []Attribute
	index map[string]int
}

// ErrUnknownAttribute indicates a name not declared in the schema.
var ErrUnknownAttribute = errors.New("attribute not declared in schema")

// NewSchema builds a schema from attribute declarations.
// Names must be non-empty and unique.
func NewSchema(attrs ...Attribute) (*Schema, error) {
	if len(attrs) == 0 {
		return nil, errors.New("schema requires at least one attribute")
	}
	s := &Schema{
		attrs: make([]Attribute, len(attrs)),
		index: make(map[string]int, len(attrs)),
	}
	copy(s.attrs, attrs)
	for i, a := range attrs {
		if a.Name == "" {
			return nil, errors.Newf("schema attribute %d has empty name", i)
		}
		if _, dup := s.index[a.Name]; dup {
			return nil, errors.Newf("schema attribute %q declared twice", a.Name)
		}
		s.index[a.Name] = i
	}
	return s, nil
}

// MustSchema is NewSchema that panics on error. For fixtures and demos.
func MustSchema(attrs ...Attribute) *Schema {
	s, err := NewSchema(attrs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of attributes.
func (s *Schema) Len() int { return len(s.attrs) }

// Attributes returns a copy of the ordered declarations.
func (s *Schema) Attributes() []Attribute {
	out := make([]Attribute, len(s.attrs))
	copy(out, s.attrs)
	return out
}

// Attribute returns the declaration at position i.
func (s *Schema) Attribute(i int) Attribute { return s.attrs[i] }

// Index returns the position of a named attribute.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Has reports whether the schema declares the named attribute.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// KindOf returns the kind of a named attribute.
func (s *Schema) KindOf(name string) (AttributeKind, bool) {
	i, ok := s.index[name]
	if !ok {
		return Categorical, false
	}
	return s.attrs[i].Kind, true
}

// Names returns all attribute names in schema order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.attrs))
	for i, a := range s.attrs {
		names[i] = a.Name
	}
	return names
}
