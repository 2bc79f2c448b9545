package extractor

import (
	"context"
	"time"

	"github.com/toestah/dawson-extractor/pkg/catalog"
	"github.com/toestah/dawson-extractor/pkg/logger"
)

// DiscoveryKeywords cover the major document categories of the court
var DiscoveryKeywords = []string{
	"order", "motion", "decision", "opinion", "petition",
	"dismissal", "closing", "brief", "memorandum", "notice",
	"stipulation", "response", "reply", "objection", "report",
}

// Discoverer counts the document types reported by broad searches
type Discoverer struct {
	api      API
	keywords []string
	reporter Reporter
	logger   logger.Logger
}

// NewDiscoverer creates a discoverer over the default keyword list
func NewDiscoverer(api API, reporter Reporter, log logger.Logger) *Discoverer {
	if reporter == nil {
		reporter = nopReporter{}
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Discoverer{api: api, keywords: DiscoveryKeywords, reporter: reporter, logger: log}
}

// Discover searches every keyword and returns a catalog of the types seen.
// Failed searches are skipped; a cancelled context stops the sweep and is
// returned as the error.
func (d *Discoverer) Discover(ctx context.Context) (*catalog.Catalog, error) {
	counts := make(map[string]int)

	for _, keyword := range d.keywords {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		d.reporter.SearchStarted(keyword)
		resp, err := d.api.Search(ctx, keyword)
		if err != nil {
			d.logger.WithError(err).WithField("keyword", keyword).Warn("Discovery search failed")
			d.reporter.SearchCompleted(keyword, 0, err)
			continue
		}

		seen := 0
		for _, result := range resp.Results {
			if result.DocumentType != "" {
				counts[result.DocumentType]++
				seen++
			}
		}
		d.reporter.SearchCompleted(keyword, seen, nil)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return catalog.FromCounts(counts, time.Now()), nil
}
