package ui

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/toestah/dawson-extractor/pkg/catalog"
	"github.com/toestah/dawson-extractor/pkg/extractor"
	"github.com/toestah/dawson-extractor/pkg/quota"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetColorEnabled(false)
	SetQuietMode(false)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		SetQuietMode(false)
		SetColorEnabled(true)
	})
	return &buf
}

func TestProgressBarFor(t *testing.T) {
	assert.Equal(t, "[██████████░░░░░░░░░░] 1/2", ProgressBarFor(1, 2))
	assert.Equal(t, "[░░░░░░░░░░░░░░░░░░░░] 0/0", ProgressBarFor(0, 0))
	assert.Equal(t, "[████████████████████] 3/2", ProgressBarFor(3, 2))
}

func TestColorDisabled(t *testing.T) {
	SetColorEnabled(false)
	defer SetColorEnabled(true)
	assert.Equal(t, "plain", Red("plain"))

	SetColorEnabled(true)
	assert.Equal(t, "\033[31mred\033[0m", Red("red"))
}

func TestConsoleLines(t *testing.T) {
	buf := capture(t)
	c := NewConsole()

	c.CaseStarted(2, 5, "12345-21")
	c.CaseCandidates("12345-21", 0)
	c.CaseCandidates("12345-21", 3)
	c.DocumentDownloaded("12345-21_a_2023-01-01.pdf", 1, 4)
	c.DocumentFailed(extractor.Candidate{CaseID: "12345-21", DocumentID: "b"}, errors.New("status 500"))

	out := buf.String()
	assert.Contains(t, out, "[2/5] Processing docket: 12345-21")
	assert.Contains(t, out, "No matching documents found in docket 12345-21")
	assert.Contains(t, out, "Found 3 matching document(s)")
	assert.Contains(t, out, "Downloaded: 12345-21_a_2023-01-01.pdf")
	assert.Contains(t, out, "Progress: [█████░░░░░░░░░░░░░░░] 1/4 new downloads")
	assert.Contains(t, out, "Failed to download 12345-21/b: status 500")
}

func TestQuietModeKeepsErrors(t *testing.T) {
	buf := capture(t)
	SetQuietMode(true)

	NewConsole().CaseStarted(1, 1, "1-21")
	PrintInfo("Target", "3")
	PrintError("Configuration invalid", "num_orders")

	assert.Equal(t, "Configuration invalid: num_orders\n", buf.String())
}

func TestPrintSummary(t *testing.T) {
	buf := capture(t)

	PrintSummary(&extractor.Summary{
		Outcome:        extractor.OutcomeCompleted,
		Downloaded:     3,
		Skipped:        1,
		TotalInLibrary: 7,
		APICalls:       12,
		TypeCounts:     []quota.TypeCount{{Type: "Order", Count: 2}, {Type: "Decision", Count: 1}},
		Duration:       2500 * time.Millisecond,
		OutputDir:      "/tmp/out",
	})

	out := buf.String()
	assert.Contains(t, out, "EXTRACTION COMPLETE")
	assert.Contains(t, out, "New documents downloaded: 3")
	assert.Contains(t, out, "Documents skipped (already existed): 1")
	assert.Contains(t, out, "Total documents in library: 7")
	assert.Contains(t, out, "     2  Order")
	assert.Contains(t, out, "Total API calls: 12")
	assert.Contains(t, out, "Errors: 0")
	assert.Contains(t, out, "Duration: 2.5 seconds")
	assert.Contains(t, out, "Output directory: /tmp/out")
}

func TestPrintSummaryAlreadySatisfied(t *testing.T) {
	buf := capture(t)
	PrintSummary(&extractor.Summary{Outcome: extractor.OutcomeAlreadySatisfied, OutputDir: "/tmp/out"})
	assert.Contains(t, buf.String(), "Already have enough documents. Nothing to download.")
	assert.NotContains(t, buf.String(), "Downloaded by type")
}

func TestPrintCatalog(t *testing.T) {
	buf := capture(t)
	c := catalog.FromCounts(map[string]int{"Order": 12, "Decision": 3}, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	PrintCatalog(c)
	PrintDiscovery(c, "/tmp/catalog.json", 15)

	out := buf.String()
	assert.Contains(t, out, "Total types: 2")
	assert.Contains(t, out, "    12  Order")
	assert.Contains(t, out, "Catalog saved to: /tmp/catalog.json")
	assert.Contains(t, out, "Total API calls: 15")
}
