package extractor

import (
	"github.com/toestah/dawson-extractor/pkg/dawson"
	"github.com/toestah/dawson-extractor/pkg/matcher"
	"github.com/toestah/dawson-extractor/pkg/metadata"
	"github.com/toestah/dawson-extractor/pkg/storage"
)

// Candidate is a docket entry selected for download
type Candidate struct {
	CaseID       string
	DocumentID   string
	DocumentType string
	Description  string
	FiledDate    string
}

// Filename returns the name the candidate is saved under
func (c Candidate) Filename() string {
	return storage.Filename(c.CaseID, c.DocumentID, c.FiledDate)
}

// Metadata returns the sidecar record for the candidate
func (c Candidate) Metadata() *metadata.DocumentMetadata {
	return &metadata.DocumentMetadata{
		DocketNumber:  c.CaseID,
		DocketEntryID: c.DocumentID,
		DocumentType:  c.DocumentType,
		Description:   c.Description,
		FiledDate:     c.FiledDate,
	}
}

// CaseFilter selects the downloadable entries of a docket
type CaseFilter struct {
	matcher *matcher.Matcher
}

// NewCaseFilter creates a case filter
func NewCaseFilter(m *matcher.Matcher) *CaseFilter {
	return &CaseFilter{matcher: m}
}

// Filter returns the entries that match a wanted type, are not sealed and
// carry a document id, in docket order
func (f *CaseFilter) Filter(details *dawson.CaseDetails) []Candidate {
	if details == nil {
		return nil
	}

	var candidates []Candidate
	for _, entry := range details.DocketEntries {
		if entry.IsSealed || entry.DocketEntryID == "" || !f.matcher.Matches(entry.DocumentType) {
			continue
		}

		filed := entry.FilingDate
		if filed == "" {
			filed = storage.UnknownDate
		}

		candidates = append(candidates, Candidate{
			CaseID:       details.DocketNumber,
			DocumentID:   entry.DocketEntryID,
			DocumentType: entry.DocumentType,
			Description:  entry.Description,
			FiledDate:    filed,
		})
	}
	return candidates
}
