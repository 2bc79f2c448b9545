// Package fakeapi serves an in-memory case-management API for tests.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/toestah/dawson-extractor/pkg/dawson"
)

// Endpoint kinds reported by Calls
const (
	KindSearch      = "search"
	KindCase        = "case"
	KindDownloadURL = "download_url"
	KindFile        = "file"
)

// Server is a fake API backed by httptest.Server. Failures can be injected
// per keyword, case or document.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	searches    map[string][]dawson.SearchResult
	cases       map[string]dawson.CaseDetails
	documents   map[string][]byte
	failSearch  map[string]int
	failCase    map[string]int
	failURL     map[string]int
	omitURL     map[string]bool
	failFile    map[string]int
	calls       map[string]int
	userAgents  map[string]bool
	fileFetches map[string]int
}

// New starts a fake API server. Callers must Close it.
func New() *Server {
	s := &Server{
		searches:    make(map[string][]dawson.SearchResult),
		cases:       make(map[string]dawson.CaseDetails),
		documents:   make(map[string][]byte),
		failSearch:  make(map[string]int),
		failCase:    make(map[string]int),
		failURL:     make(map[string]int),
		omitURL:     make(map[string]bool),
		failFile:    make(map[string]int),
		calls:       make(map[string]int),
		userAgents:  make(map[string]bool),
		fileFetches: make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /public-api/order-search", s.handleSearch)
	mux.HandleFunc("GET /public-api/cases/{docket}", s.handleCase)
	mux.HandleFunc("GET /public-api/{docket}/{document}/public-document-download-url", s.handleDownloadURL)
	mux.HandleFunc("GET /files/{document}", s.handleFile)

	s.Server = httptest.NewServer(mux)
	return s
}

// AddSearchResults registers results returned for keyword
func (s *Server) AddSearchResults(keyword string, results ...dawson.SearchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches[keyword] = append(s.searches[keyword], results...)
}

// AddCase registers a docket and a fake PDF for each entry carrying an id
func (s *Server) AddCase(details dawson.CaseDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cases[details.DocketNumber] = details
	for _, entry := range details.DocketEntries {
		if entry.DocketEntryID != "" {
			s.documents[entry.DocketEntryID] = PDF(entry.DocketEntryID)
		}
	}
}

// FailSearch makes the search for keyword answer with status
func (s *Server) FailSearch(keyword string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSearch[keyword] = status
}

// FailCase makes the docket fetch for docketNumber answer with status
func (s *Server) FailCase(docketNumber string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCase[docketNumber] = status
}

// FailDownloadURL makes URL resolution for documentID answer with status
func (s *Server) FailDownloadURL(documentID string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failURL[documentID] = status
}

// OmitDownloadURL answers URL resolution for documentID with an empty object
func (s *Server) OmitDownloadURL(documentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.omitURL[documentID] = true
}

// FailFile makes the binary fetch for documentID answer with status
func (s *Server) FailFile(documentID string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failFile[documentID] = status
}

// Calls returns how many requests hit the given endpoint kind
func (s *Server) Calls(kind string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[kind]
}

// TotalCalls returns the number of requests across all endpoints
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

// FileFetches returns how many times documentID's payload was requested
func (s *Server) FileFetches(documentID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fileFetches[documentID]
}

// SawUserAgent reports whether any request carried ua
func (s *Server) SawUserAgent(ua string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userAgents[ua]
}

// PDF returns the fake payload served for documentID
func PDF(documentID string) []byte {
	return []byte("%PDF-1.4\n% " + documentID + "\n%%EOF\n")
}

func (s *Server) record(kind string, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[kind]++
	s.userAgents[r.UserAgent()] = true
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.record(KindSearch, r)
	keyword := r.URL.Query().Get("keyword")

	s.mu.Lock()
	status, failed := s.failSearch[keyword]
	results := append([]dawson.SearchResult{}, s.searches[keyword]...)
	s.mu.Unlock()

	if failed {
		http.Error(w, fmt.Sprintf(`{"message":"search failed for %s"}`, keyword), status)
		return
	}
	writeJSON(w, dawson.SearchResponse{Results: results})
}

func (s *Server) handleCase(w http.ResponseWriter, r *http.Request) {
	s.record(KindCase, r)
	docket := r.PathValue("docket")

	s.mu.Lock()
	status, failed := s.failCase[docket]
	details, ok := s.cases[docket]
	s.mu.Unlock()

	switch {
	case failed:
		http.Error(w, `{"message":"case unavailable"}`, status)
	case !ok:
		http.Error(w, `{"message":"Case not found"}`, http.StatusNotFound)
	default:
		writeJSON(w, details)
	}
}

func (s *Server) handleDownloadURL(w http.ResponseWriter, r *http.Request) {
	s.record(KindDownloadURL, r)
	document := r.PathValue("document")

	s.mu.Lock()
	status, failed := s.failURL[document]
	omit := s.omitURL[document]
	_, ok := s.documents[document]
	s.mu.Unlock()

	switch {
	case failed:
		http.Error(w, `{"message":"download unavailable"}`, status)
	case omit:
		writeJSON(w, map[string]string{})
	case !ok:
		http.Error(w, `{"message":"Document not found"}`, http.StatusNotFound)
	default:
		writeJSON(w, dawson.DownloadURLResponse{
			URL: s.URL + "/files/" + document + "?X-Amz-Signature=fake",
		})
	}
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	s.record(KindFile, r)
	document := r.PathValue("document")

	s.mu.Lock()
	s.fileFetches[document]++
	status, failed := s.failFile[document]
	payload, ok := s.documents[document]
	s.mu.Unlock()

	switch {
	case failed:
		http.Error(w, "AccessDenied", status)
	case !ok:
		http.NotFound(w, r)
	default:
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(payload)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
