package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/toestah/dawson-extractor/pkg/catalog"
	"github.com/toestah/dawson-extractor/pkg/config"
	"github.com/toestah/dawson-extractor/pkg/dawson"
	"github.com/toestah/dawson-extractor/pkg/extractor"
	"github.com/toestah/dawson-extractor/pkg/logger"
	"github.com/toestah/dawson-extractor/pkg/ratelimit"
	"github.com/toestah/dawson-extractor/pkg/stats"
	"github.com/toestah/dawson-extractor/pkg/ui"
)

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Catalog the document types reported by the API",
	Long: `Run broad searches over the major document categories, count every
document type the API reports and save the counts to the catalog file.

Use the catalog to pick names for exact matching.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDiscover(cmd)
	},
}

// typesCmd represents the types command
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the document types of the saved catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTypes(cmd)
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(typesCmd)

	discoverCmd.Flags().StringVar(&environment, "env", "", "API environment (blue, green)")
	discoverCmd.Flags().Float64Var(&rateLimit, "rate-limit", 1.0, "seconds to wait before each request")
}

func runDiscover(cmd *cobra.Command) error {
	flags, err := extractFlags(cmd, nil)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	ui.PrintBanner()
	ui.PrintHighlight("Discovering document types...")

	c, apiCalls, err := discover(cmd.Context(), cfg, ui.NewDiscoveryConsole())
	if err != nil {
		return err
	}

	ui.PrintDiscovery(c, cfg.Output.CatalogFile, apiCalls)
	return nil
}

// discover sweeps the discovery keywords and saves the catalog
func discover(ctx context.Context, cfg *config.Config, reporter extractor.Reporter) (*catalog.Catalog, int, error) {
	log := logger.WithField("command", "discover")

	run := stats.New()
	limiter := ratelimit.New(cfg.RateLimit.Strategy, cfg.RateLimit.Delay)
	client := dawson.NewClient(&cfg.API, limiter, run, log)

	c, err := extractor.NewDiscoverer(client, reporter, log).Discover(ctx)
	if err != nil {
		return nil, run.APICalls, err
	}
	if err := catalog.Save(cfg.Output.CatalogFile, c); err != nil {
		return nil, run.APICalls, err
	}

	log.InfoWithFields("Catalog saved", map[string]interface{}{
		"path":      cfg.Output.CatalogFile,
		"types":     c.TotalTypes,
		"api_calls": run.APICalls,
	})
	return c, run.APICalls, nil
}

func runTypes(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	c, err := catalog.Load(cfg.Output.CatalogFile)
	if errors.Is(err, os.ErrNotExist) {
		ui.PrintNoCatalog()
		return nil
	}
	if err != nil {
		return err
	}

	ui.PrintCatalog(c)
	return nil
}
