package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/induct-org/induct/config"
	"github.com/induct-org/induct/engine"
)

// RunCmd runs induction over the built-in sample relation.
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run induction over the built-in sample relation",
	Long: `Generalizes the built-in customer relation: ages climb to life
stages, cities to countries, duplicates merge into counted rows with mean
salaries. Thresholds come from flags or a YAML config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		rThresh, _ := cmd.Flags().GetInt("relation-threshold")
		parallel, _ := cmd.Flags().GetBool("parallel")

		run := &config.Run{
			Attributes: []string{"age", "city"},
			AttributeThresholds: map[string]int{
				"age":  3,
				"city": 4,
			},
			RelationThreshold: rThresh,
			Aggregates:        []string{"salary"},
		}
		if configPath != "" {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return err
			}
			run, err = config.Parse(data)
			if err != nil {
				return err
			}
		}

		rel, err := sampleRelation()
		if err != nil {
			return err
		}
		hierarchies, err := sampleHierarchies()
		if err != nil {
			return err
		}

		eng := engine.New(
			engine.WithLogger(newLogger()),
			engine.WithParallelism(parallel),
		)
		result, err := eng.Run(rel, engine.Config{
			Attributes:                run.Attributes,
			Hierarchies:               hierarchies,
			AttributeThresholds:       run.AttributeThresholds,
			DefaultAttributeThreshold: run.DefaultAttributeThreshold,
			RelationThreshold:         run.RelationThreshold,
			Aggregates:                run.Aggregates,
		})
		if err != nil {
			pterm.Error.Printf("Induction failed: %v\n", err)
			return err
		}

		renderResult(result)
		return nil
	},
}

func init() {
	RunCmd.Flags().String("config", "", "Path to YAML run config (overrides flags)")
	RunCmd.Flags().Int("relation-threshold", 8, "Max tuples in the generalized relation")
	RunCmd.Flags().Bool("parallel", false, "Generalize attributes concurrently")
}

// renderResult prints the generalized relation as a table, followed by
// warnings and a summary line.
func renderResult(result *engine.Result) {
	header := result.Schema.Names()
	header = append(header, "count")
	aggNames := aggregateNames(result)
	for _, attr := range aggNames {
		header = append(header, "mean("+attr+")")
	}

	rows := pterm.TableData{header}
	for _, t := range result.Tuples {
		row := make([]string, 0, len(header))
		for _, v := range t.Values {
			row = append(row, v.String())
		}
		row = append(row, fmt.Sprintf("%d", t.Count))
		for _, attr := range aggNames {
			if mean, ok := t.Aggregates[attr]; ok {
				row = append(row, fmt.Sprintf("%.2f", mean))
			} else {
				row = append(row, "-")
			}
		}
		rows = append(rows, row)
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		fmt.Println(rows)
	}

	for _, w := range result.Warnings {
		if w.Attribute != "" {
			pterm.Warning.Printf("%s (%s): %s\n", w.Kind, w.Attribute, w.Detail)
		} else {
			pterm.Warning.Printf("%s: %s\n", w.Kind, w.Detail)
		}
	}

	pterm.Success.Printf("Merged %d tuples into %d (%d forced climbs)\n",
		result.InputCount(), len(result.Tuples), result.Climbs)
}

// aggregateNames lists the aggregate attributes present in the result.
func aggregateNames(result *engine.Result) []string {
	seen := map[string]bool{}
	var names []string
	for _, t := range result.Tuples {
		for attr := range t.Aggregates {
			if !seen[attr] {
				seen[attr] = true
				names = append(names, attr)
			}
		}
	}
	sort.Strings(names)
	return names
}
