package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jorro/reelstats/report"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every parameterless report",
	Long:  `Run every report that needs no arguments. Reports share an immutable snapshot of the dataset, so they execute concurrently.`,
	Run:   all,
}

func init() {
	rootCmd.AddCommand(allCmd)
}

func all(_ *cobra.Command, _ []string) {
	_, catalog, err := loadCatalog()
	if err != nil {
		log.Fatalf("%v", err)
	}

	defs := catalog.Definitions()
	results := make([]*report.Result, len(defs))

	var g errgroup.Group
	for i, def := range defs {
		if def.Args != "" {
			continue
		}
		g.Go(func() error {
			result, err := catalog.Run(def.Name, report.Params{})
			if err != nil {
				return fmt.Errorf("report %s: %w", def.Name, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("%v", err)
	}

	for _, result := range results {
		if result == nil {
			continue
		}
		fmt.Printf("== %s ==\n", result.Report)
		printResult(result)
		fmt.Println()
	}
}
