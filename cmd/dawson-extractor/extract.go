package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/toestah/dawson-extractor/pkg/config"
	"github.com/toestah/dawson-extractor/pkg/dawson"
	"github.com/toestah/dawson-extractor/pkg/extractor"
	"github.com/toestah/dawson-extractor/pkg/logger"
	"github.com/toestah/dawson-extractor/pkg/metrics"
	"github.com/toestah/dawson-extractor/pkg/ratelimit"
	"github.com/toestah/dawson-extractor/pkg/stats"
	"github.com/toestah/dawson-extractor/pkg/storage"
	"github.com/toestah/dawson-extractor/pkg/ui"
)

var (
	// Extraction flags
	outputDir   string
	environment string
	rateLimit   float64
	matchMode   string
	docTypes    []string
	keywords    []string
	minPerType  int
	metricsFile string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [num_orders]",
	Short: "Download documents until the library holds num_orders of them",
	Long: `Search DAWSON for the configured keywords, visit the matching dockets in
random order and download public documents of the wanted types.

Documents already present under the output directory count towards the
target. A run ends when the target is reached or the dockets run out; either
way a summary is printed.`,
	Example: `  # Grow the library to 25 documents of the configured types
  dawson-extractor extract 25

  # Exact type matching against the blue environment
  dawson-extractor extract --types "Order of Dismissal" --match-mode exact --env blue

  # Write Prometheus metrics for a node_exporter textfile collector
  dawson-extractor extract --metrics-file /var/lib/node_exporter/dawson.prom`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	addExtractFlags(extractCmd)
}

// addExtractFlags registers the extraction flags on cmd
func addExtractFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "base output directory (default: downloads)")
	cmd.Flags().StringVar(&environment, "env", "", "API environment (blue, green)")
	cmd.Flags().Float64Var(&rateLimit, "rate-limit", 1.0, "seconds to wait before each request")
	cmd.Flags().StringVar(&matchMode, "match-mode", "", "document type matching (exact, substring)")
	cmd.Flags().StringSliceVar(&docTypes, "types", nil, "document types to collect (comma separated)")
	cmd.Flags().StringSliceVar(&keywords, "keywords", nil, "search keywords (comma separated)")
	cmd.Flags().IntVar(&minPerType, "min-per-type", 0, "minimum downloads per document type")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
}

// extractFlags collects the flags the user actually set
func extractFlags(cmd *cobra.Command, args []string) (map[string]interface{}, error) {
	flags := make(map[string]interface{})
	f := cmd.Flags()

	if n, ok, err := parseTarget(args); err != nil {
		return nil, err
	} else if ok {
		flags["num-orders"] = n
	}
	if f.Changed("output") {
		flags["output"] = outputDir
	}
	if f.Changed("env") {
		flags["env"] = environment
	}
	if f.Changed("rate-limit") {
		if rateLimit < 0 {
			return nil, fmt.Errorf("invalid rate limit %v", rateLimit)
		}
		flags["rate-limit"] = config.SecondsToDuration(rateLimit)
	}
	if f.Changed("match-mode") {
		flags["match-mode"] = matchMode
	}
	if f.Changed("types") {
		flags["types"] = docTypes
	}
	if f.Changed("keywords") {
		flags["keywords"] = keywords
	}
	if f.Changed("min-per-type") {
		flags["min-per-type"] = minPerType
	}
	if f.Changed("metrics-file") {
		flags["metrics-file"] = metricsFile
	}
	return flags, nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	flags, err := extractFlags(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	summary, err := extract(cmd.Context(), cfg, ui.NewConsole())
	if err != nil {
		return err
	}
	ui.PrintSummary(summary)

	if cfg.Output.MetricsFile != "" {
		m := metrics.New(logger.RunID())
		m.Observe(summary)
		if err := m.WriteTextfile(cfg.Output.MetricsFile); err != nil {
			logger.WithError(err).WithField("path", cfg.Output.MetricsFile).Error("Failed to write metrics")
			ui.PrintWarning("Failed to write metrics", err)
		}
	}
	return nil
}

// extract wires the extraction pipeline from cfg and runs it once
func extract(ctx context.Context, cfg *config.Config, reporter extractor.Reporter) (*extractor.Summary, error) {
	log := logger.WithField("command", "extract")

	base := cfg.Output.BaseDirectory
	index, err := storage.Scan(base)
	if err != nil {
		return nil, err
	}

	// new documents go to a run folder only when there is something to fetch
	dir := base
	if cfg.Output.RunFolders && index.Len() < cfg.Extraction.NumOrders {
		dir = filepath.Join(base, storage.RunDirName(cfg.Extraction.DocumentTypes, time.Now()))
	}

	store, err := storage.NewManager(dir)
	if err != nil {
		return nil, err
	}

	run := stats.New()
	limiter := ratelimit.New(cfg.RateLimit.Strategy, cfg.RateLimit.Delay)
	client := dawson.NewClient(&cfg.API, limiter, run, log)

	log.InfoWithFields("Extractor configured", map[string]interface{}{
		"base_url":       client.BaseURL(),
		"indexed":        index.Len(),
		"rate_limit":     cfg.RateLimit.Delay.String(),
		"limit_strategy": cfg.RateLimit.Strategy,
	})

	ext, err := extractor.New(client, store, index, run, &cfg.Extraction,
		extractor.WithReporter(reporter),
		extractor.WithLogger(log),
		extractor.WithRateLimit(cfg.RateLimit.Delay),
	)
	if err != nil {
		return nil, err
	}

	return ext.Run(ctx, cfg.Extraction.NumOrders)
}
