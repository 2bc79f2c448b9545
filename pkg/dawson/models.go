package dawson

// SearchResponse represents the result list of a keyword search
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// SearchResult is one matching filing in a search response
type SearchResult struct {
	DocketNumber  string `json:"docketNumber"`
	DocumentType  string `json:"documentType"`
	DocumentTitle string `json:"documentTitle,omitempty"`
	CaseCaption   string `json:"caseCaption,omitempty"`
	DocketEntryID string `json:"docketEntryId,omitempty"`
	FilingDate    string `json:"filingDate,omitempty"`
}

// CaseDetails represents the full docket of one case
type CaseDetails struct {
	DocketNumber  string        `json:"docketNumber"`
	CaseCaption   string        `json:"caseCaption,omitempty"`
	DocketEntries []DocketEntry `json:"docketEntries"`
}

// DocketEntry represents one filing event on a docket
type DocketEntry struct {
	DocketEntryID string `json:"docketEntryId"`
	DocumentType  string `json:"documentType"`
	IsSealed      bool   `json:"isSealed"`
	Description   string `json:"description"`
	FilingDate    string `json:"filingDate"`
	EventCode     string `json:"eventCode,omitempty"`
	Index         int    `json:"index,omitempty"`
}

// DownloadURLResponse carries the short-lived signed URL of a document
type DownloadURLResponse struct {
	URL string `json:"url"`
}
