package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jorro/reelstats/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report catalog over HTTP",
	Long:  `Start the HTTP export server. Every report is available as JSON under /api/reports/<name>; results are cached for the configured TTL.`,
	Example: `reelstats serve --config config.yml
reelstats serve -d netflix_titles.csv --log-level debug`,
	Run: serve,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(_ *cobra.Command, _ []string) {
	cfg, catalog, err := loadCatalog()
	if err != nil {
		log.Fatalf("%v", err)
	}

	server, err := api.New(cfg, catalog, log.GetLevel() == log.DebugLevel)
	if err != nil {
		log.Fatalf("failed to create API server: %v", err)
	}

	go func() {
		log.Info("starting API server", "listen", cfg.Listen)
		if err := server.Run(); err != nil {
			log.Fatalf("API server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	log.Info("shutting down...")
}
