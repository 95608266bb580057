package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/docstream/ingest/internal/config"
	"github.com/docstream/ingest/internal/pipeline"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ingest <config.json> | <indir> <url> <dbname>",
	Short: "Load scientific document files into an articles database",
	Long: `ingest walks a directory tree of CSV, PDF and XML documents, parses each
into normalized article records on a worker pool, and loads the records
into an articles database that skips duplicates.

Invoke with a single JSON config file path, or with the input directory,
database url and database name as three positional values.`,
	Args:         cobra.RangeArgs(1, 3),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := buildLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}

		return pipeline.Run(cfg, logger)
	},
}

func loadConfig(args []string) (*config.Config, error) {
	switch len(args) {
	case 1:
		return config.Load(args[0])
	case 3:
		return config.FromArgs(args[0], args[1], args[2]), nil
	default:
		return nil, fmt.Errorf("expected a config file path or <indir> <url> <dbname>, got %d arguments", len(args))
	}
}

func buildLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
