package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	run, err := Parse([]byte(`
attributes: [age, city]
attribute_thresholds:
  age: 3
  city: 4
relation_threshold: 10
aggregates: [salary]
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"age", "city"}, run.Attributes)
	assert.Equal(t, 3, run.AttributeThresholds["age"])
	assert.Equal(t, 4, run.AttributeThresholds["city"])
	assert.Equal(t, 10, run.RelationThreshold)
	assert.Equal(t, []string{"salary"}, run.Aggregates)
}

func TestParseDefaultThreshold(t *testing.T) {
	run, err := Parse([]byte(`
attributes: [age]
default_attribute_threshold: 5
relation_threshold: 8
`))
	require.NoError(t, err)
	assert.Equal(t, 5, run.DefaultAttributeThreshold)
	assert.Empty(t, run.AttributeThresholds)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", `{{`},
		{"no attributes", `relation_threshold: 8`},
		{"zero relation threshold", `
attributes: [age]
relation_threshold: 0`},
		{"negative attribute threshold", `
attributes: [age]
attribute_thresholds:
  age: -1
relation_threshold: 8`},
		{"negative default threshold", `
attributes: [age]
default_attribute_threshold: -2
relation_threshold: 8`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}
