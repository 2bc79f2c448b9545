package dawson

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultEnvironment is used when no environment is configured
	DefaultEnvironment = "green"

	// SearchEndpoint is the keyword search over filed orders and opinions
	SearchEndpoint = "/public-api/order-search"

	// SearchDateRange asks the search endpoint for every filing date
	SearchDateRange = "allDates"

	// DefaultSearchLimit is the page-size bound sent with each search
	DefaultSearchLimit = 5000
)

// Environments maps an environment selector to its public API base URL.
// Both environments serve the same API; the selector only picks the host.
var Environments = map[string]string{
	"blue":  "https://public-api-blue.dawson.ustaxcourt.gov",
	"green": "https://public-api-green.dawson.ustaxcourt.gov",
}

// ResolveBaseURL returns override when set, otherwise the URL of the named
// environment, falling back to the default environment for unknown names.
func ResolveBaseURL(environment, override string) string {
	if override != "" {
		return strings.TrimRight(override, "/")
	}
	if base, ok := Environments[strings.ToLower(environment)]; ok {
		return base
	}
	return Environments[DefaultEnvironment]
}

// CasePath returns the case-detail path for a docket number
func CasePath(docketNumber string) string {
	return "/public-api/cases/" + url.PathEscape(docketNumber)
}

// DownloadURLPath returns the path resolving a document's signed download URL
func DownloadURLPath(docketNumber, documentID string) string {
	return fmt.Sprintf("/public-api/%s/%s/public-document-download-url",
		url.PathEscape(docketNumber), url.PathEscape(documentID))
}

// SearchQuery builds the query parameters for one keyword search
func SearchQuery(keyword string, limit int) url.Values {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	params := url.Values{}
	params.Set("keyword", keyword)
	params.Set("dateRange", SearchDateRange)
	params.Set("limit", fmt.Sprintf("%d", limit))
	return params
}

// redactURL drops the query string of a signed URL so credentials embedded in
// it never reach logs or error messages
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "document"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
