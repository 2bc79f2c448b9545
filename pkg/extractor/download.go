package extractor

import (
	"context"

	errs "github.com/toestah/dawson-extractor/pkg/errors"
	"github.com/toestah/dawson-extractor/pkg/logger"
	"github.com/toestah/dawson-extractor/pkg/stats"
	"github.com/toestah/dawson-extractor/pkg/storage"
)

// Outcome is the result of one download attempt
type Outcome string

const (
	OutcomeDownloaded Outcome = "downloaded"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeError      Outcome = "error"
)

// DownloadResult reports what happened to one candidate
type DownloadResult struct {
	Outcome  Outcome
	Filename string
	Path     string
	Err      error
}

// Downloader fetches and saves one candidate at a time
type Downloader struct {
	api    API
	store  Store
	index  *storage.Index
	stats  *stats.Run
	logger logger.Logger
}

// NewDownloader creates a downloader writing into store and index
func NewDownloader(api API, store Store, index *storage.Index, run *stats.Run, log logger.Logger) *Downloader {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Downloader{api: api, store: store, index: index, stats: run, logger: log}
}

// Download resolves, fetches and saves a candidate. A document already in the
// index is skipped without any network call. API failures are counted by the
// client; write failures are counted here.
func (d *Downloader) Download(ctx context.Context, c Candidate) DownloadResult {
	if d.index.Has(c.DocumentID) {
		d.stats.IncSkipped()
		logger.LogDownload(d.logger, c.CaseID, c.DocumentID, c.DocumentType, string(OutcomeSkipped), nil)
		return DownloadResult{Outcome: OutcomeSkipped}
	}

	signedURL, err := d.api.DownloadURL(ctx, c.CaseID, c.DocumentID)
	if err != nil {
		return d.failed(c, err)
	}

	payload, err := d.api.FetchDocument(ctx, signedURL)
	if err != nil {
		return d.failed(c, err)
	}

	filename := c.Filename()
	path, err := d.store.Save(filename, payload, c.Metadata())
	if err != nil {
		d.stats.IncErrors()
		return d.failed(c, err)
	}

	d.index.Add(c.DocumentID)
	d.stats.IncDownloaded()
	logger.LogDownload(d.logger, c.CaseID, c.DocumentID, c.DocumentType, string(OutcomeDownloaded), nil)

	return DownloadResult{Outcome: OutcomeDownloaded, Filename: filename, Path: path}
}

func (d *Downloader) failed(c Candidate, err error) DownloadResult {
	log := d.logger
	if t := errs.TypeOf(err); t != "" {
		log = log.WithField("error_type", string(t))
	}
	logger.LogDownload(log, c.CaseID, c.DocumentID, c.DocumentType, string(OutcomeError), err)
	return DownloadResult{Outcome: OutcomeError, Err: err}
}
