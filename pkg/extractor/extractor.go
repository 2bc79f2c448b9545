package extractor

import (
	"context"
	"math/rand"
	"time"

	"github.com/toestah/dawson-extractor/pkg/config"
	"github.com/toestah/dawson-extractor/pkg/logger"
	"github.com/toestah/dawson-extractor/pkg/matcher"
	"github.com/toestah/dawson-extractor/pkg/quota"
	"github.com/toestah/dawson-extractor/pkg/stats"
	"github.com/toestah/dawson-extractor/pkg/storage"
)

// Extractor runs the search, filter, quota and download loop
type Extractor struct {
	api        API
	index      *storage.Index
	stats      *stats.Run
	quota      *quota.Tracker
	search     *SearchAggregator
	filter     *CaseFilter
	downloader *Downloader
	outputDir  string

	types     []string
	keywords  []string
	rateLimit time.Duration

	reporter Reporter
	logger   logger.Logger
	shuffle  func([]string)
}

// Option customises an Extractor
type Option func(*Extractor)

// WithReporter sets where progress is reported
func WithReporter(r Reporter) Option {
	return func(e *Extractor) {
		if r != nil {
			e.reporter = r
		}
	}
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithShuffle replaces the random permutation of candidate cases
func WithShuffle(shuffle func([]string)) Option {
	return func(e *Extractor) {
		if shuffle != nil {
			e.shuffle = shuffle
		}
	}
}

// WithRateLimit records the configured delay for the run plan
func WithRateLimit(d time.Duration) Option {
	return func(e *Extractor) {
		e.rateLimit = d
	}
}

// New wires an extractor. index must already hold every document found on
// disk; run is shared with the API client so call counts land in one place.
func New(api API, store Store, index *storage.Index, run *stats.Run, cfg *config.ExtractionConfig, opts ...Option) (*Extractor, error) {
	mode, err := matcher.ParseMode(cfg.MatchMode)
	if err != nil {
		return nil, err
	}
	m := matcher.New(cfg.DocumentTypes, mode)

	e := &Extractor{
		api:       api,
		index:     index,
		stats:     run,
		quota:     quota.New(cfg.DocumentTypes, cfg.MinPerType),
		filter:    NewCaseFilter(m),
		outputDir: store.OutputDir(),
		types:     cfg.DocumentTypes,
		keywords:  cfg.SearchKeywords,
		reporter:  nopReporter{},
		logger:    logger.GetLogger(),
		shuffle:   randomShuffle,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.search = NewSearchAggregator(api, m, e.reporter, e.logger)
	e.downloader = NewDownloader(api, store, index, run, e.logger)
	return e, nil
}

func randomShuffle(cases []string) {
	rand.Shuffle(len(cases), func(i, j int) {
		cases[i], cases[j] = cases[j], cases[i]
	})
}

// Run collects new documents until the library holds target documents or the
// candidate cases are exhausted. Failures of single searches, cases or
// downloads are logged and counted; Run itself always returns a summary.
func (e *Extractor) Run(ctx context.Context, target int) (*Summary, error) {
	existing := e.index.Len()
	needed := target - existing
	if needed < 0 {
		needed = 0
	}

	summary := &Summary{
		Target:     target,
		Existing:   existing,
		Needed:     needed,
		MinPerType: e.quota.MinPerType(),
		OutputDir:  e.outputDir,
	}

	e.logger.InfoWithFields("Starting extraction", map[string]interface{}{
		"target":         target,
		"existing":       existing,
		"needed":         needed,
		"document_types": e.types,
		"min_per_type":   e.quota.MinPerType(),
		"output_dir":     e.outputDir,
	})
	e.reporter.RunStarted(Plan{
		Target:        target,
		DocumentTypes: e.types,
		MinPerType:    e.quota.MinPerType(),
		Existing:      existing,
		Needed:        needed,
		OutputDir:     e.outputDir,
		RateLimit:     e.rateLimit,
	})

	if needed == 0 {
		summary.Outcome = OutcomeAlreadySatisfied
		return e.finish(summary), nil
	}

	cases := e.search.Search(ctx, e.keywords)
	summary.CasesFound = len(cases)
	if ctx.Err() != nil {
		summary.Outcome = OutcomeCancelled
		return e.finish(summary), nil
	}
	if len(cases) == 0 {
		e.logger.Warn("No candidate cases found")
		summary.Outcome = OutcomeNothingFound
		return e.finish(summary), nil
	}

	e.shuffle(cases)
	e.reporter.CasesQueued(len(cases))

	collected := 0
	for i, caseID := range cases {
		if collected >= needed || ctx.Err() != nil {
			break
		}
		summary.CasesVisited++
		collected += e.processCase(ctx, i+1, len(cases), caseID, collected, needed)
	}
	summary.Collected = collected

	switch {
	case ctx.Err() != nil:
		summary.Outcome = OutcomeCancelled
	case collected >= needed:
		summary.Outcome = OutcomeCompleted
	default:
		summary.Outcome = OutcomePartial
	}
	return e.finish(summary), nil
}

// processCase downloads the wanted documents of one case and returns how many
// new documents it saved
func (e *Extractor) processCase(ctx context.Context, index, total int, caseID string, collected, needed int) int {
	e.reporter.CaseStarted(index, total, caseID)
	logger.LogCaseProgress(e.logger, index, total, caseID)

	details, err := e.api.CaseDetails(ctx, caseID)
	if err != nil {
		e.logger.WithError(err).WithField("case_id", caseID).Warn("Skipping case, docket fetch failed")
		return 0
	}

	candidates := e.filter.Filter(details)
	if len(candidates) > 0 && !e.quota.AllMinimumsMet() {
		candidates = e.neededOnly(candidates)
	}
	e.reporter.CaseCandidates(caseID, len(candidates))
	if len(candidates) == 0 {
		return 0
	}

	saved := 0
	for _, c := range candidates {
		if collected+saved >= needed || ctx.Err() != nil {
			break
		}
		// Minimums may have been reached for this type by an earlier
		// candidate of the same case
		if !e.quota.AllMinimumsMet() && !e.quota.NeedsType(c.DocumentType) {
			continue
		}

		result := e.downloader.Download(ctx, c)
		switch result.Outcome {
		case OutcomeDownloaded:
			saved++
			e.quota.Record(c.DocumentType)
			e.reporter.DocumentDownloaded(result.Filename, collected+saved, needed)
		case OutcomeError:
			e.reporter.DocumentFailed(c, result.Err)
		}
	}
	return saved
}

// neededOnly keeps the candidates whose type is still below its minimum
func (e *Extractor) neededOnly(candidates []Candidate) []Candidate {
	var kept []Candidate
	for _, c := range candidates {
		if e.quota.NeedsType(c.DocumentType) {
			kept = append(kept, c)
		}
	}
	return kept
}

func (e *Extractor) finish(s *Summary) *Summary {
	s.Downloaded = e.stats.Downloaded
	s.Skipped = e.stats.Skipped
	s.Errors = e.stats.Errors
	s.APICalls = e.stats.APICalls
	s.TotalInLibrary = e.index.Len()
	s.Duration = e.stats.Elapsed()
	if e.quota.Active() {
		s.TypeCounts = e.quota.Counts()
	}

	e.logger.InfoWithFields("Extraction finished", map[string]interface{}{
		"outcome":    string(s.Outcome),
		"downloaded": s.Downloaded,
		"skipped":    s.Skipped,
		"errors":     s.Errors,
		"api_calls":  s.APICalls,
		"duration":   s.Duration,
	})
	return s
}
