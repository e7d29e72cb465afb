package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jorro/reelstats/report"
)

var runCmdFlags struct {
	Year    int
	Name    string
	Country string
	N       int
	Years   int
}

var runCmd = &cobra.Command{
	Use:   "run <report>",
	Short: "Run a single report",
	Example: `reelstats run content-type-counts
  reelstats run movies-by-year --year 2020
  reelstats run top-actors-in-country --country India --n 10`,
	Args: cobra.ExactArgs(1),
	Run:  run,
}

func init() {
	runCmd.Flags().IntVar(&runCmdFlags.Year, "year", 0, "Release year (movies-by-year)")
	runCmd.Flags().StringVar(&runCmdFlags.Name, "name", "", "Director or actor name (by-director, actor-recent)")
	runCmd.Flags().StringVar(&runCmdFlags.Country, "country", "", "Country name (top-actors-in-country, india-year-share)")
	runCmd.Flags().IntVar(&runCmdFlags.N, "n", 0, "Result limit or threshold for reports that take one")
	runCmd.Flags().IntVar(&runCmdFlags.Years, "years", 0, "Year window for date-filtered reports")

	rootCmd.AddCommand(runCmd)
}

func run(_ *cobra.Command, args []string) {
	_, catalog, err := loadCatalog()
	if err != nil {
		log.Fatalf("%v", err)
	}

	result, err := catalog.Run(args[0], report.Params{
		Year:    runCmdFlags.Year,
		Name:    runCmdFlags.Name,
		Country: runCmdFlags.Country,
		N:       runCmdFlags.N,
		Years:   runCmdFlags.Years,
	})
	if err != nil {
		log.Fatalf("%v", err)
	}

	printResult(result)
}

func printResult(result *report.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(result.Columns, "\t")))
	for _, row := range result.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush() //nolint:errcheck
	fmt.Printf("(%s rows)\n", humanize.Comma(int64(len(result.Rows))))
}
