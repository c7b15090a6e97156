package relation

// ============================================================================
// ADAPTER — Typed Struct Rows → Relation
// ============================================================================
//
// Usage:
//
//	adapter := relation.NewAdapter[Customer]().
//	    Categorical("city", func(c Customer) string { return c.City }).
//	    Quantitative("age", func(c Customer) float64 { return float64(c.Age) })
//
//	rel, err := adapter.Bind(customers)
//
// Declare accessors once, bind many times. Binding materializes immutable
// tuples — the resulting relation does not reference the source slice.
// ============================================================================

// Adapter builds relations from typed rows via registered accessors.
type Adapter[T any] struct {
	attrs []Attribute
	cats  map[string]func(T) string
	quans map[string]func(T) float64
}

// NewAdapter creates a new adapter for row type T.
func NewAdapter[T any]() *Adapter[T] {
	return &Adapter[T]{
		cats:  make(map[string]func(T) string),
		quans: make(map[string]func(T) float64),
	}
}

// Categorical registers a categorical accessor.
// An empty string from the accessor is stored as Missing.
func (a *Adapter[T]) Categorical(name string, fn func(T) string) *Adapter[T] {
	if _, exists := a.cats[name]; !exists {
		if _, exists := a.quans[name]; !exists {
			a.attrs = append(a.attrs, Attribute{Name: name, Kind: Categorical})
		}
	}
	a.cats[name] = fn
	return a
}

// Quantitative registers a quantitative accessor.
func (a *Adapter[T]) Quantitative(name string, fn func(T) float64) *Adapter[T] {
	if _, exists := a.quans[name]; !exists {
		if _, exists := a.cats[name]; !exists {
			a.attrs = append(a.attrs, Attribute{Name: name, Kind: Quantitative})
		}
	}
	a.quans[name] = fn
	return a
}

// Bind materializes a relation from a slice of typed rows.
func (a *Adapter[T]) Bind(rows []T) (*Relation, error) {
	schema, err := NewSchema(a.attrs...)
	if err != nil {
		return nil, err
	}
	rel := New(schema)
	for _, row := range rows {
		values := make([]Value, len(a.attrs))
		for i, attr := range a.attrs {
			switch attr.Kind {
			case Quantitative:
				values[i] = Float(a.quans[attr.Name](row))
			default:
				if s := a.cats[attr.Name](row); s != "" {
					values[i] = Text(s)
				} else {
					values[i] = Missing()
				}
			}
		}
		if err := rel.AppendRow(values...); err != nil {
			return nil, err
		}
	}
	return rel, nil
}
