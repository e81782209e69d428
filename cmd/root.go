package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jjenkins/bulletin/internal/config"
	"github.com/jjenkins/bulletin/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "bulletin",
	Short: "Import NYU bulletin class search results into a document store",
	Long: `bulletin fetches course listings from the NYU bulletin class search API
for one subject grouping and one term and stores the raw results.

Running bulletin with no subcommand starts an interactive import.`,
	Run: runImport,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger every command needs
func setup() (*config.Config, *zap.Logger) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	return cfg, zapLogger
}
