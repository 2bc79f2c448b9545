package ui

import (
	"fmt"
	"strings"

	"github.com/toestah/dawson-extractor/pkg/extractor"
)

const (
	ProgressBar   = "█"
	ProgressEmpty = "░"
	barWidth      = 20
)

// Console prints run progress as plain lines on stdout
type Console struct{}

// NewConsole creates a console reporter
func NewConsole() *Console {
	return &Console{}
}

// ProgressBarFor renders done out of total as a fixed-width bar
func ProgressBarFor(done, total int) string {
	filled := 0
	if total > 0 {
		filled = done * barWidth / total
	}
	if filled > barWidth {
		filled = barWidth
	}

	bar := strings.Repeat(ProgressBar, filled) + strings.Repeat(ProgressEmpty, barWidth-filled)
	return fmt.Sprintf("[%s] %d/%d", bar, done, total)
}

// RunStarted prints the plan of the run
func (c *Console) RunStarted(plan extractor.Plan) {
	PrintBanner()
	PrintInfo("Target", fmt.Sprintf("%d total documents", plan.Target))
	PrintInfo("Document types", strings.Join(plan.DocumentTypes, ", "))
	if plan.MinPerType > 0 {
		PrintInfo("Minimum per type", fmt.Sprintf("%d", plan.MinPerType))
	}
	PrintInfo("Existing", fmt.Sprintf("%d documents", plan.Existing))
	PrintInfo("To download", fmt.Sprintf("%d new documents", plan.Needed))
	PrintInfo("Output", plan.OutputDir)
	PrintInfo("Rate limit", fmt.Sprintf("%.1fs between requests", plan.RateLimit.Seconds()))
	printf("\n")
}

// SearchStarted announces one keyword search
func (c *Console) SearchStarted(keyword string) {
	printf("Searching for documents with keyword: '%s'...\n", keyword)
}

// SearchCompleted reports what one keyword search found
func (c *Console) SearchCompleted(keyword string, cases int, err error) {
	if err != nil {
		PrintWarning(fmt.Sprintf("Search for '%s' failed", keyword), err)
		return
	}
	printf("Found %d unique dockets with matching documents\n", cases)
}

// CasesQueued announces how many cases will be visited
func (c *Console) CasesQueued(total int) {
	printf("\nProcessing %d unique dockets...\n", total)
}

// CaseStarted prints the case header line
func (c *Console) CaseStarted(index, total int, caseID string) {
	printf("\n%s Processing docket: %s\n", Dim(fmt.Sprintf("[%d/%d]", index, total)), caseID)
}

// CaseCandidates reports how many documents of a case will be tried
func (c *Console) CaseCandidates(caseID string, count int) {
	if count == 0 {
		printf("  No matching documents found in docket %s\n", caseID)
		return
	}
	printf("  Found %d matching document(s)\n", count)
}

// DocumentDownloaded prints the saved file and overall progress
func (c *Console) DocumentDownloaded(filename string, collected, needed int) {
	printf("%s %s\n", Green("Downloaded:"), filename)
	printf("  Progress: %s new downloads\n", ProgressBarFor(collected, needed))
}

// DocumentFailed reports a failed download
func (c *Console) DocumentFailed(candidate extractor.Candidate, err error) {
	PrintWarning(fmt.Sprintf("  Failed to download %s/%s", candidate.CaseID, candidate.DocumentID), err)
}

// DiscoveryConsole reports a discovery sweep
type DiscoveryConsole struct {
	Console
}

// NewDiscoveryConsole creates a discovery reporter
func NewDiscoveryConsole() *DiscoveryConsole {
	return &DiscoveryConsole{}
}

// SearchCompleted reports how many typed results one keyword returned
func (c *DiscoveryConsole) SearchCompleted(keyword string, results int, err error) {
	if err != nil {
		PrintWarning(fmt.Sprintf("Search for '%s' failed", keyword), err)
		return
	}
	printf("  %d results with a document type\n", results)
}
