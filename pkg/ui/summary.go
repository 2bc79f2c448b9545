package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/toestah/dawson-extractor/pkg/catalog"
	"github.com/toestah/dawson-extractor/pkg/extractor"
)

var rule = strings.Repeat("=", 50)

// PrintSummary prints the end-of-run report. It is printed for every outcome.
func PrintSummary(s *extractor.Summary) {
	switch s.Outcome {
	case extractor.OutcomeAlreadySatisfied:
		PrintSuccess("Already have enough documents. Nothing to download.")
	case extractor.OutcomeNothingFound:
		PrintWarning("No dockets found.")
	case extractor.OutcomeCancelled:
		PrintWarning("Extraction cancelled.")
	case extractor.OutcomePartial:
		PrintWarning(fmt.Sprintf("Ran out of dockets after %d of %d new documents.", s.Collected, s.Needed))
	}

	title := "EXTRACTION COMPLETE"
	if s.Outcome == extractor.OutcomeCancelled {
		title = "EXTRACTION CANCELLED"
	}

	printf("\n%s\n%s\n%s\n", rule, Cyan(title), rule)
	printf("New documents downloaded: %d\n", s.Downloaded)
	printf("Documents skipped (already existed): %d\n", s.Skipped)
	printf("Total documents in library: %d\n", s.TotalInLibrary)
	if len(s.TypeCounts) > 0 {
		printf("\nDownloaded by type:\n")
		for _, tc := range s.TypeCounts {
			printf("  %4d  %s\n", tc.Count, tc.Type)
		}
	}
	printf("Total API calls: %d\n", s.APICalls)
	if s.Errors > 0 {
		printf("Errors: %s\n", Red(fmt.Sprintf("%d", s.Errors)))
	} else {
		printf("Errors: 0\n")
	}
	printf("Duration: %.1f seconds\n", s.Duration.Seconds())
	printf("Output directory: %s\n", absPath(s.OutputDir))
	printf("%s\n", rule)
}

// PrintDiscovery prints the result of a discovery sweep
func PrintDiscovery(c *catalog.Catalog, path string, apiCalls int) {
	printf("\n%s\n%s\n%s\n", rule, Cyan("DISCOVERY COMPLETE"), rule)
	printf("Document types found: %d\n", c.TotalTypes)
	printf("Catalog saved to: %s\n", absPath(path))
	printf("Total API calls: %d\n", apiCalls)
	printf("\nTop 10 document types:\n")
	for _, e := range c.Top(10) {
		printf("  %5d  %s\n", e.Count, e.Type)
	}
	printf("%s\n", rule)
}

// PrintCatalog lists every type of a saved catalog
func PrintCatalog(c *catalog.Catalog) {
	printf("\n%s\n", Cyan("=== DAWSON Document Types ==="))
	printf("Discovered: %s\n", c.DiscoveredAt.Format("2006-01-02 15:04:05"))
	printf("Total types: %d\n", c.TotalTypes)
	printf("\n%6s  Type\n", "Count")
	printf("%s\n", strings.Repeat("-", 50))
	for _, e := range c.Types {
		printf("%6d  %s\n", e.Count, e.Type)
	}
	printf("%s\n", strings.Repeat("-", 50))
	printf("\nTo use exact matching, add types to the extraction.document_types list\n")
	printf("and set extraction.match_mode to 'exact'.\n")
}

// PrintNoCatalog explains how to create a catalog
func PrintNoCatalog() {
	PrintWarning("No document type catalog found.")
	printf("Run with --discover first to catalog document types from the API.\n")
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
