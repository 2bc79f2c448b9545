package main

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/toestah/dawson-extractor/pkg/config"
	"github.com/toestah/dawson-extractor/pkg/logger"
	"github.com/toestah/dawson-extractor/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	noColor    bool
	quiet      bool
	verbose    bool

	// Compatibility flags of the root command
	discoverMode bool
	listTypes    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dawson-extractor [num_orders]",
	Short: "Incrementally download public court documents from DAWSON",
	Long: `DAWSON Extractor downloads publicly filed documents of the U.S. Tax Court
case-management system (DAWSON) into a local library.

Runs are incremental: documents already on disk are counted towards the target
and never downloaded again. Document types are matched exactly or by substring,
and an optional per-type minimum keeps one common type from filling the run.

Configuration is read from flags, DAWSON_* environment variables, a .env file
and dawson-extractor.yaml, in that order of priority.`,
	Example: `  # Grow the library to 10 orders
  dawson-extractor

  # Grow the library to 50 documents
  dawson-extractor 50

  # Collect decisions and opinions, at least 5 of each
  dawson-extractor extract 20 --types Decision,Opinion --min-per-type 5

  # Catalog the document types the API reports
  dawson-extractor discover`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.ConfigureColor(noColor)
		if quiet {
			ui.SetQuietMode(true)
		}
		logger.Version = version
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case discoverMode:
			return runDiscover(cmd)
		case listTypes:
			return runTypes(cmd)
		default:
			return runExtract(cmd, args)
		}
	},
}

// Execute runs the root command until ctx is cancelled or the command returns
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		ui.PrintError("Error", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is ./dawson-extractor.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show debug logs")

	addExtractFlags(rootCmd)
	rootCmd.Flags().BoolVar(&discoverMode, "discover", false, "catalog document types instead of extracting")
	rootCmd.Flags().BoolVar(&listTypes, "list-types", false, "list the cataloged document types")
	rootCmd.MarkFlagsMutuallyExclusive("discover", "list-types")

	rootCmd.SetVersionTemplate(`DAWSON Extractor {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadConfig merges the command line over env, file and defaults
func loadConfig(cmd *cobra.Command, flags map[string]interface{}) (*config.Config, error) {
	if flags == nil {
		flags = make(map[string]interface{})
	}

	f := cmd.Flags()
	switch {
	case f.Changed("log-level"):
		flags["log-level"] = logLevel
	case verbose:
		flags["log-level"] = "debug"
	case quiet:
		flags["log-level"] = "error"
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		return nil, err
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

// parseTarget reads the optional positional document count
func parseTarget(args []string) (int, bool, error) {
	if len(args) == 0 {
		return 0, false, nil
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return 0, false, fmt.Errorf("invalid number of documents %q", args[0])
	}
	return n, true, nil
}
