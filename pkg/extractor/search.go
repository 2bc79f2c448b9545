package extractor

import (
	"context"
	"sort"

	"github.com/toestah/dawson-extractor/pkg/logger"
	"github.com/toestah/dawson-extractor/pkg/matcher"
)

// SearchAggregator runs one search per keyword and merges the case ids whose
// reported document type is wanted
type SearchAggregator struct {
	api      API
	matcher  *matcher.Matcher
	reporter Reporter
	logger   logger.Logger
}

// NewSearchAggregator creates a search aggregator
func NewSearchAggregator(api API, m *matcher.Matcher, reporter Reporter, log logger.Logger) *SearchAggregator {
	if reporter == nil {
		reporter = nopReporter{}
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &SearchAggregator{api: api, matcher: m, reporter: reporter, logger: log}
}

// Search returns the sorted, de-duplicated case ids found across keywords.
// A failed search contributes nothing and does not stop the others.
func (s *SearchAggregator) Search(ctx context.Context, keywords []string) []string {
	seen := make(map[string]struct{})

	for _, keyword := range keywords {
		if ctx.Err() != nil {
			break
		}

		s.reporter.SearchStarted(keyword)
		resp, err := s.api.Search(ctx, keyword)
		if err != nil {
			s.logger.WithError(err).WithField("keyword", keyword).Warn("Search failed, continuing with remaining keywords")
			s.reporter.SearchCompleted(keyword, 0, err)
			continue
		}

		found := make(map[string]struct{})
		for _, result := range resp.Results {
			if result.DocketNumber == "" || !s.matcher.Matches(result.DocumentType) {
				continue
			}
			found[result.DocketNumber] = struct{}{}
			seen[result.DocketNumber] = struct{}{}
		}

		s.logger.InfoWithFields("Search completed", map[string]interface{}{
			"keyword": keyword,
			"results": len(resp.Results),
			"cases":   len(found),
		})
		s.reporter.SearchCompleted(keyword, len(found), nil)
	}

	cases := make([]string, 0, len(seen))
	for id := range seen {
		cases = append(cases, id)
	}
	sort.Strings(cases)
	return cases
}
