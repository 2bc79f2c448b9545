package extractor

import (
	"context"
	"time"

	"github.com/toestah/dawson-extractor/pkg/dawson"
	"github.com/toestah/dawson-extractor/pkg/metadata"
)

// API defines the case-management operations the extractor needs
type API interface {
	Search(ctx context.Context, keyword string) (*dawson.SearchResponse, error)
	CaseDetails(ctx context.Context, docketNumber string) (*dawson.CaseDetails, error)
	DownloadURL(ctx context.Context, docketNumber, documentID string) (string, error)
	FetchDocument(ctx context.Context, documentURL string) ([]byte, error)
}

// Store persists a downloaded document with its metadata
type Store interface {
	Save(filename string, payload []byte, meta *metadata.DocumentMetadata) (string, error)
	OutputDir() string
}

// Plan describes a run before it starts
type Plan struct {
	Target        int
	DocumentTypes []string
	MinPerType    int
	Existing      int
	Needed        int
	OutputDir     string
	RateLimit     time.Duration
}

// Reporter receives the progress of a run
type Reporter interface {
	RunStarted(plan Plan)
	SearchStarted(keyword string)
	SearchCompleted(keyword string, cases int, err error)
	CasesQueued(total int)
	CaseStarted(index, total int, caseID string)
	CaseCandidates(caseID string, count int)
	DocumentDownloaded(filename string, collected, needed int)
	DocumentFailed(candidate Candidate, err error)
}

type nopReporter struct{}

func (nopReporter) RunStarted(Plan)                     {}
func (nopReporter) SearchStarted(string)                {}
func (nopReporter) SearchCompleted(string, int, error)  {}
func (nopReporter) CasesQueued(int)                     {}
func (nopReporter) CaseStarted(int, int, string)        {}
func (nopReporter) CaseCandidates(string, int)          {}
func (nopReporter) DocumentDownloaded(string, int, int) {}
func (nopReporter) DocumentFailed(Candidate, error)     {}
