package engine

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/induct-org/induct/hierarchy"
	"github.com/induct-org/induct/relation"
)

// ============================================================================
// FIXTURES — Customer Sample
// ============================================================================

func customerSchema(t *testing.T) *relation.Schema {
	t.Helper()
	s, err := relation.NewSchema(
		relation.Attribute{Name: "city", Kind: relation.Categorical},
		relation.Attribute{Name: "age", Kind: relation.Quantitative},
		relation.Attribute{Name: "salary", Kind: relation.Quantitative},
	)
	require.NoError(t, err)
	return s
}

func customersRelation(t *testing.T) *relation.Relation {
	t.Helper()
	rel := relation.New(customerSchema(t))
	rows := []struct {
		city   string
		age    int64
		salary float64
	}{
		{"Toronto", 23, 52000},
		{"Vancouver", 21, 49000},
		{"Montreal", 67, 88000},
		{"Ottawa", 43, 74000},
		{"New York", 23, 61000},
		{"Boston", 19, 38000},
		{"Chicago", 67, 92000},
		{"London", 32, 57000},
	}
	for _, r := range rows {
		require.NoError(t, rel.AppendRow(
			relation.Text(r.city), relation.Int(r.age), relation.Float(r.salary)))
	}
	return rel
}

func cityHierarchy(t *testing.T) *hierarchy.Table {
	t.Helper()
	h, err := hierarchy.NewTable().
		Link("Toronto", "Canada").
		Link("Vancouver", "Canada").
		Link("Montreal", "Canada").
		Link("Ottawa", "Canada").
		Link("New York", "USA").
		Link("Boston", "USA").
		Link("Chicago", "USA").
		Link("London", "Other").
		Link("Canada", "ANY").
		Link("USA", "ANY").
		Link("Other", "ANY").
		Build()
	require.NoError(t, err)
	return h
}

func ageHierarchy() *hierarchy.RuleBased {
	return hierarchy.NewRuleBased("ANY",
		hierarchy.Rule{Label: "Young", Match: hierarchy.LessThan(25)},
		hierarchy.Rule{Label: "Middle-Aged", Match: hierarchy.LessThan(60)},
		hierarchy.Rule{Label: "Senior", Match: hierarchy.Any()},
	)
}

func customerConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Attributes: []string{"age", "city"},
		Hierarchies: map[string]hierarchy.Hierarchy{
			"age":  ageHierarchy(),
			"city": cityHierarchy(t),
		},
		AttributeThresholds: map[string]int{"age": 3, "city": 4},
		RelationThreshold:   8,
		Aggregates:          []string{"salary"},
	}
}

func labels(values ...string) []relation.Value {
	out := make([]relation.Value, len(values))
	for i, v := range values {
		out[i] = relation.Text(v)
	}
	return out
}

// ============================================================================
// SCENARIOS
// ============================================================================

func TestRunGeneralizesAgeToThreeBuckets(t *testing.T) {
	cfg := Config{
		Attributes:          []string{"age"},
		Hierarchies:         map[string]hierarchy.Hierarchy{"age": ageHierarchy()},
		AttributeThresholds: map[string]int{"age": 3},
		RelationThreshold:   8,
	}

	result, err := New().Run(customersRelation(t), cfg)
	require.NoError(t, err)
	require.Empty(t, result.Warnings)

	// Exactly three distinct labels, no climbing past level 1 needed.
	assert.Equal(t, 1, result.Levels["age"])
	require.Len(t, result.Tuples, 3)

	// First-occurrence order: 23→Young, 67→Senior, 43→Middle-Aged.
	assert.Equal(t, labels("Young"), result.Tuples[0].Values)
	assert.Equal(t, 4, result.Tuples[0].Count)
	assert.Equal(t, labels("Senior"), result.Tuples[1].Values)
	assert.Equal(t, 2, result.Tuples[1].Count)
	assert.Equal(t, labels("Middle-Aged"), result.Tuples[2].Values)
	assert.Equal(t, 2, result.Tuples[2].Count)

	assert.Equal(t, 8, result.InputCount())
}

func TestRunGroupsByAgeAndCountry(t *testing.T) {
	result, err := New().Run(customersRelation(t), customerConfig(t))
	require.NoError(t, err)
	require.Empty(t, result.Warnings)
	require.Equal(t, 0, result.Climbs)

	want := []struct {
		values []relation.Value
		count  int
		salary float64
	}{
		{labels("Young", "Canada"), 2, 50500},
		{labels("Senior", "Canada"), 1, 88000},
		{labels("Middle-Aged", "Canada"), 1, 74000},
		{labels("Young", "USA"), 2, 49500},
		{labels("Senior", "USA"), 1, 92000},
		{labels("Middle-Aged", "Other"), 1, 57000},
	}

	require.Len(t, result.Tuples, len(want))
	for i, w := range want {
		assert.Equal(t, w.values, result.Tuples[i].Values, "tuple %d", i)
		assert.Equal(t, w.count, result.Tuples[i].Count, "tuple %d", i)
		assert.InDelta(t, w.salary, result.Tuples[i].Aggregates["salary"], 1e-9, "tuple %d", i)
	}

	assert.Equal(t, 8, result.InputCount())
	assert.Equal(t, []string{"age", "city"}, result.Schema.Names())
}

func TestRunForcesClimbsToMeetRelationThreshold(t *testing.T) {
	cfg := customerConfig(t)
	cfg.RelationThreshold = 1

	result, err := New().Run(customersRelation(t), cfg)
	require.NoError(t, err)
	require.Empty(t, result.Warnings, "root level reaches one tuple, so no warning")

	// Everything collapses to the roots; no tuple is dropped.
	require.Len(t, result.Tuples, 1)
	assert.Equal(t, labels("ANY", "ANY"), result.Tuples[0].Values)
	assert.Equal(t, 8, result.Tuples[0].Count)
	assert.Equal(t, 8, result.InputCount())

	assert.Equal(t, 2, result.Climbs)
	assert.Equal(t, 2, result.Levels["age"])
	assert.Equal(t, 2, result.Levels["city"])
}

func TestRunRelationThresholdUnsatisfiable(t *testing.T) {
	// City passes through (no hierarchy), so nothing can climb.
	cfg := Config{
		Attributes:        []string{"city"},
		RelationThreshold: 1,
	}

	result, err := New().Run(customersRelation(t), cfg)
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, RelationThresholdUnsatisfiable, result.Warnings[0].Kind)

	// Best-effort result: all eight distinct cities, nothing dropped.
	assert.Len(t, result.Tuples, 8)
	assert.Equal(t, 8, result.InputCount())
}

func TestRunAttributeThresholdUnsatisfiable(t *testing.T) {
	// A country forest with no shared root: three labels is the floor.
	forest, err := hierarchy.NewTable().
		Link("Toronto", "Canada").
		Link("Vancouver", "Canada").
		Link("Montreal", "Canada").
		Link("Ottawa", "Canada").
		Link("New York", "USA").
		Link("Boston", "USA").
		Link("Chicago", "USA").
		Link("London", "Other").
		Build()
	require.NoError(t, err)

	cfg := Config{
		Attributes:          []string{"city"},
		Hierarchies:         map[string]hierarchy.Hierarchy{"city": forest},
		AttributeThresholds: map[string]int{"city": 1},
		RelationThreshold:   8,
	}

	result, err := New().Run(customersRelation(t), cfg)
	require.NoError(t, err, "unsatisfiable attribute threshold is a warning, not an error")

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, ThresholdUnsatisfiable, result.Warnings[0].Kind)
	assert.Equal(t, "city", result.Warnings[0].Attribute)

	// Root accepted: three country labels.
	assert.Len(t, result.Tuples, 3)
	assert.Equal(t, 8, result.InputCount())
}

func TestRunUnknownValueAborts(t *testing.T) {
	rel := customersRelation(t)
	require.NoError(t, rel.AppendRow(
		relation.Text("Atlantis"), relation.Int(30), relation.Float(1000)))

	result, err := New().Run(rel, customerConfig(t))
	require.Error(t, err)
	assert.Nil(t, result, "fatal errors return no partial result")

	assert.True(t, errors.Is(err, ErrUnknownValue))

	var uve *UnknownValueError
	require.True(t, errors.As(err, &uve))
	assert.Equal(t, "city", uve.Attribute)
	assert.Equal(t, 8, uve.Row)
	assert.Equal(t, relation.Text("Atlantis"), uve.Value)
}

// ============================================================================
// PROPERTIES
// ============================================================================

func TestRunIsDeterministic(t *testing.T) {
	first, err := New().Run(customersRelation(t), customerConfig(t))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := New().Run(customersRelation(t), customerConfig(t))
		require.NoError(t, err)
		assert.Equal(t, first.Tuples, again.Tuples)
		assert.Equal(t, first.Levels, again.Levels)
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	serial, err := New().Run(customersRelation(t), customerConfig(t))
	require.NoError(t, err)

	parallel, err := New(WithParallelism(true)).Run(customersRelation(t), customerConfig(t))
	require.NoError(t, err)

	assert.Equal(t, serial.Tuples, parallel.Tuples)
	assert.Equal(t, serial.Levels, parallel.Levels)
	assert.Equal(t, serial.Warnings, parallel.Warnings)
}

func TestCountConservationAcrossThresholds(t *testing.T) {
	for _, rThresh := range []int{1, 2, 3, 6, 8} {
		cfg := customerConfig(t)
		cfg.RelationThreshold = rThresh

		result, err := New().Run(customersRelation(t), cfg)
		require.NoError(t, err, "relation threshold %d", rThresh)
		assert.Equal(t, 8, result.InputCount(), "relation threshold %d", rThresh)
		assert.LessOrEqual(t, len(result.Tuples), 8, "relation threshold %d", rThresh)
	}
}

func TestTupleCountMonotoneUnderClimbing(t *testing.T) {
	// Tightening the relation threshold can only shrink the output.
	prev := 9
	for _, rThresh := range []int{8, 6, 3, 2, 1} {
		cfg := customerConfig(t)
		cfg.RelationThreshold = rThresh

		result, err := New().Run(customersRelation(t), cfg)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(result.Tuples), prev)
		prev = len(result.Tuples)
	}
}

func TestDefaultAttributeThreshold(t *testing.T) {
	cfg := customerConfig(t)
	cfg.AttributeThresholds = nil
	cfg.DefaultAttributeThreshold = 3

	result, err := New().Run(customersRelation(t), cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Levels["age"])
	assert.Equal(t, 1, result.Levels["city"])
}

// ============================================================================
// VALIDATION
// ============================================================================

func TestRunRejectsEmptyRelation(t *testing.T) {
	empty := relation.New(customerSchema(t))

	_, err := New().Run(empty, customerConfig(t))
	require.ErrorIs(t, err, ErrEmptyRelation)

	_, err = New().Run(nil, customerConfig(t))
	require.ErrorIs(t, err, ErrEmptyRelation)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	rel := customersRelation(t)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no attributes", func(c *Config) { c.Attributes = nil }},
		{"zero relation threshold", func(c *Config) { c.RelationThreshold = 0 }},
		{"unknown attribute", func(c *Config) { c.Attributes = []string{"age", "planet"} }},
		{"duplicate attribute", func(c *Config) { c.Attributes = []string{"age", "age"} }},
		{"hierarchy without threshold", func(c *Config) { c.AttributeThresholds = nil }},
		{"hierarchy for unselected attribute", func(c *Config) { c.Attributes = []string{"age"} }},
		{"aggregate not in schema", func(c *Config) { c.Aggregates = []string{"bonus"} }},
		{"categorical aggregate", func(c *Config) {
			c.Attributes = []string{"age"}
			delete(c.Hierarchies, "city")
			c.Aggregates = []string{"city"}
		}},
		{"aggregate is grouping key", func(c *Config) {
			c.Attributes = []string{"age", "salary"}
			delete(c.Hierarchies, "city")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := customerConfig(t)
			tt.mutate(&cfg)
			_, err := New().Run(rel, cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got: %v", err)
		})
	}
}
