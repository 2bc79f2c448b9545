// Package dawson provides a client for the public case-management API.
//
// The client is a thin request/response wrapper. Every call waits on the
// shared rate limiter, is counted in the run statistics, and returns a
// *errors.Error tagged as transport, http_status or malformed_response on
// failure. Nothing is retried; callers decide whether to skip the unit of
// work or continue.
//
// Operations:
//   - Search: one keyword search over all filing dates
//   - CaseDetails: a case's full docket
//   - DownloadURL: the signed URL for one document
//   - FetchDocument: the PDF bytes behind a signed URL
//
// The blue and green environments differ only by host; see ResolveBaseURL.
package dawson
