package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available reports",
	Run:   list,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func list(_ *cobra.Command, _ []string) {
	_, catalog, err := loadCatalog()
	if err != nil {
		log.Fatalf("%v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REPORT\tARGS\tDESCRIPTION")
	for _, def := range catalog.Definitions() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", def.Name, def.Args, def.Description)
	}
	w.Flush() //nolint:errcheck
}
