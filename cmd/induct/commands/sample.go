package commands

import (
	"github.com/induct-org/induct/hierarchy"
	"github.com/induct-org/induct/relation"
)

// ============================================================================
// SAMPLE DATASET — Built-In Customer Relation
// ============================================================================
// Eight customers with city, age, and salary. Small enough to verify the
// generalized output by hand: four Canadian, three US, one other; ages
// bucket into Young / Middle-Aged / Senior.
// ============================================================================

type customer struct {
	City   string
	Age    int
	Salary float64
}

var customers = []customer{
	{City: "Toronto", Age: 23, Salary: 52000},
	{City: "Vancouver", Age: 21, Salary: 49000},
	{City: "Montreal", Age: 67, Salary: 88000},
	{City: "Ottawa", Age: 43, Salary: 74000},
	{City: "New York", Age: 23, Salary: 61000},
	{City: "Boston", Age: 19, Salary: 38000},
	{City: "Chicago", Age: 67, Salary: 92000},
	{City: "London", Age: 32, Salary: 57000},
}

// sampleRelation binds the customer rows into a relation.
func sampleRelation() (*relation.Relation, error) {
	adapter := relation.NewAdapter[customer]().
		Categorical("city", func(c customer) string { return c.City }).
		Quantitative("age", func(c customer) float64 { return float64(c.Age) }).
		Quantitative("salary", func(c customer) float64 { return c.Salary })
	return adapter.Bind(customers)
}

// sampleHierarchies returns the concept hierarchies for the sample:
// city → country → ANY, and age → life stage → ANY.
func sampleHierarchies() (map[string]hierarchy.Hierarchy, error) {
	cities, err := hierarchy.NewTable().
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
	if err != nil {
		return nil, err
	}

	ages := hierarchy.NewRuleBased("ANY",
		hierarchy.Rule{Label: "Young", Match: hierarchy.LessThan(25)},
		hierarchy.Rule{Label: "Middle-Aged", Match: hierarchy.LessThan(60)},
		hierarchy.Rule{Label: "Senior", Match: hierarchy.Any()},
	)

	return map[string]hierarchy.Hierarchy{
		"city": cities,
		"age":  ages,
	}, nil
}
