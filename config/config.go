// Package config loads YAML run configuration for the induct CLI:
// attribute selection, thresholds, and aggregates. Concept hierarchies are
// never loaded from files — they are supplied to the engine as already
// constructed structures.
package config

import (
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Run is one induction run's configuration.
//
//	attributes: [age, city]
//	attribute_thresholds:
//	  age: 3
//	  city: 4
//	relation_threshold: 10
//	aggregates: [salary]
type Run struct {
	Attributes                []string       `yaml:"attributes"`
	AttributeThresholds       map[string]int `yaml:"attribute_thresholds"`
	DefaultAttributeThreshold int            `yaml:"default_attribute_threshold"`
	RelationThreshold         int            `yaml:"relation_threshold"`
	Aggregates                []string       `yaml:"aggregates"`
}

// Parse decodes and validates a YAML run configuration.
func Parse(data []byte) (*Run, error) {
	var r Run
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(err, "parse run config")
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks the structural constraints the engine will also enforce,
// so config mistakes surface before any data is touched.
func (r *Run) Validate() error {
	if len(r.Attributes) == 0 {
		return errors.New("run config: attributes must not be empty")
	}
	if r.RelationThreshold < 1 {
		return errors.Newf("run config: relation_threshold %d must be positive", r.RelationThreshold)
	}
	if r.DefaultAttributeThreshold < 0 {
		return errors.Newf("run config: default_attribute_threshold %d must not be negative",
			r.DefaultAttributeThreshold)
	}
	for attr, t := range r.AttributeThresholds {
		if t < 1 {
			return errors.Newf("run config: attribute_thresholds[%s] = %d must be positive", attr, t)
		}
	}
	return nil
}
