package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toestah/dawson-extractor/internal/fakeapi"
	"github.com/toestah/dawson-extractor/pkg/catalog"
	"github.com/toestah/dawson-extractor/pkg/config"
	"github.com/toestah/dawson-extractor/pkg/dawson"
	"github.com/toestah/dawson-extractor/pkg/extractor"
	"github.com/toestah/dawson-extractor/pkg/logger"
)

func testConfig(t *testing.T, api *fakeapi.Server) *config.Config {
	t.Helper()
	logger.SetLogger(logger.NewNopLogger())

	cfg := config.DefaultConfig()
	cfg.API.BaseURL = api.URL
	cfg.RateLimit.Delay = 0
	cfg.Output.BaseDirectory = t.TempDir()
	cfg.Output.CatalogFile = filepath.Join(t.TempDir(), "catalog.json")
	return cfg
}

func TestParseTarget(t *testing.T) {
	n, ok, err := parseTarget(nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, n)

	n, ok, err = parseTarget([]string{"25"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 25, n)

	_, _, err = parseTarget([]string{"-1"})
	assert.Error(t, err)
	_, _, err = parseTarget([]string{"ten"})
	assert.Error(t, err)
}

func TestExtractWritesRunFolder(t *testing.T) {
	api := fakeapi.New()
	defer api.Close()
	api.AddSearchResults("order", dawson.SearchResult{DocketNumber: "100-21", DocumentType: "Order"})
	api.AddCase(dawson.CaseDetails{
		DocketNumber: "100-21",
		DocketEntries: []dawson.DocketEntry{
			{DocketEntryID: "doc-1", DocumentType: "Order", FilingDate: "2023-01-01T00:00:00.000Z"},
			{DocketEntryID: "doc-2", DocumentType: "Order of Dismissal", FilingDate: "2023-01-02T00:00:00.000Z"},
		},
	})

	cfg := testConfig(t, api)
	cfg.Extraction.NumOrders = 2

	summary, err := extract(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, extractor.OutcomeCompleted, summary.Outcome)
	assert.Equal(t, 2, summary.Downloaded)

	// documents land in one timestamped folder below the base directory
	entries, err := os.ReadDir(cfg.Output.BaseDirectory)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsDir())
	assert.Contains(t, entries[0].Name(), "order_")
	assert.Equal(t, filepath.Join(cfg.Output.BaseDirectory, entries[0].Name()), summary.OutputDir)
	assert.FileExists(t, filepath.Join(summary.OutputDir, "100-21_doc-1_2023-01-01.pdf"))
	assert.FileExists(t, filepath.Join(summary.OutputDir, "100-21_doc-1_2023-01-01.json"))

	// a second run finds both documents in the run folder and does nothing
	before := api.TotalCalls()
	summary, err = extract(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, extractor.OutcomeAlreadySatisfied, summary.Outcome)
	assert.Equal(t, before, api.TotalCalls())

	entries, err = os.ReadDir(cfg.Output.BaseDirectory)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDiscoverSavesCatalog(t *testing.T) {
	api := fakeapi.New()
	defer api.Close()
	api.AddSearchResults("order",
		dawson.SearchResult{DocketNumber: "1-21", DocumentType: "Order"},
		dawson.SearchResult{DocketNumber: "2-21", DocumentType: "Order"},
	)
	api.AddSearchResults("decision", dawson.SearchResult{DocketNumber: "3-21", DocumentType: "Decision"})

	cfg := testConfig(t, api)

	c, apiCalls, err := discover(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, len(extractor.DiscoveryKeywords), apiCalls)
	assert.Equal(t, 2, c.TotalTypes)

	saved, err := catalog.Load(cfg.Output.CatalogFile)
	require.NoError(t, err)
	assert.Equal(t, []catalog.Entry{{Type: "Order", Count: 2}, {Type: "Decision", Count: 1}}, []catalog.Entry(saved.Types))
}

func TestExtractLogsFinishOnce(t *testing.T) {
	api := fakeapi.New()
	defer api.Close()
	api.AddSearchResults("order", dawson.SearchResult{DocketNumber: "100-21", DocumentType: "Order"})
	api.AddCase(dawson.CaseDetails{
		DocketNumber:  "100-21",
		DocketEntries: []dawson.DocketEntry{{DocketEntryID: "doc-1", DocumentType: "Order"}},
	})

	cfg := testConfig(t, api)
	cfg.Extraction.NumOrders = 1
	log := logger.NewTestLogger()
	logger.SetLogger(log)

	_, err := extract(context.Background(), cfg, nil)
	require.NoError(t, err)

	finished := 0
	for _, msg := range log.GetMessages() {
		if msg.Message == "Extraction finished" {
			finished++
		}
	}
	assert.Equal(t, 1, finished)
}
