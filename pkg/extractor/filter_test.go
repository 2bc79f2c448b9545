package extractor

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toestah/dawson-extractor/internal/fakeapi"
	"github.com/toestah/dawson-extractor/pkg/config"
	"github.com/toestah/dawson-extractor/pkg/dawson"
	"github.com/toestah/dawson-extractor/pkg/logger"
	"github.com/toestah/dawson-extractor/pkg/matcher"
	"github.com/toestah/dawson-extractor/pkg/stats"
)

func TestCaseFilter(t *testing.T) {
	details := &dawson.CaseDetails{
		DocketNumber: "12345-21",
		DocketEntries: []dawson.DocketEntry{
			{DocketEntryID: "a", DocumentType: "Order on Motion", FilingDate: "2023-01-01T00:00:00Z", Description: "first"},
			{DocketEntryID: "b", DocumentType: "Order", IsSealed: true},
			{DocketEntryID: "", DocumentType: "Order"},
			{DocketEntryID: "c", DocumentType: "Petition"},
			{DocketEntryID: "d", DocumentType: "order"},
		},
	}

	f := NewCaseFilter(matcher.New([]string{"Order"}, matcher.Substring))
	got := f.Filter(details)

	require.Len(t, got, 2)
	assert.Equal(t, Candidate{
		CaseID:       "12345-21",
		DocumentID:   "a",
		DocumentType: "Order on Motion",
		Description:  "first",
		FiledDate:    "2023-01-01T00:00:00Z",
	}, got[0])
	assert.Equal(t, "d", got[1].DocumentID)
	assert.Equal(t, "Unknown", got[1].FiledDate)
	assert.Equal(t, "12345-21_d_Unknown.pdf", got[1].Filename())
}

func TestCaseFilterNeverReturnsSealed(t *testing.T) {
	details := &dawson.CaseDetails{
		DocketNumber: "1-21",
		DocketEntries: []dawson.DocketEntry{
			{DocketEntryID: "sealed", DocumentType: "Order", IsSealed: true},
		},
	}

	for _, mode := range []matcher.Mode{matcher.Exact, matcher.Substring} {
		f := NewCaseFilter(matcher.New([]string{"Order"}, mode))
		assert.Empty(t, f.Filter(details), "mode %s", mode)
	}
}

func TestCaseFilterNil(t *testing.T) {
	f := NewCaseFilter(matcher.New([]string{"Order"}, matcher.Exact))
	assert.Nil(t, f.Filter(nil))
}

func TestCandidateMetadata(t *testing.T) {
	c := Candidate{CaseID: "1-21", DocumentID: "x", DocumentType: "Order", Description: "d", FiledDate: "2023-01-01"}
	meta := c.Metadata()
	assert.Equal(t, "1-21", meta.DocketNumber)
	assert.Equal(t, "x", meta.DocketEntryID)
	assert.Equal(t, "2023-01-01", meta.FiledDate)
}

func newSearchClient(t *testing.T, api *fakeapi.Server) *dawson.Client {
	t.Helper()
	cfg := config.DefaultConfig().API
	cfg.BaseURL = api.URL
	return dawson.NewClient(&cfg, nil, stats.New(), logger.NewNopLogger())
}

func TestSearchAggregator(t *testing.T) {
	api := fakeapi.New()
	defer api.Close()
	api.AddSearchResults("order",
		dawson.SearchResult{DocketNumber: "300-21", DocumentType: "Order"},
		dawson.SearchResult{DocketNumber: "100-21", DocumentType: "Order of Dismissal"},
		dawson.SearchResult{DocketNumber: "100-21", DocumentType: "Order"},
		dawson.SearchResult{DocketNumber: "900-21", DocumentType: "Petition"},
		dawson.SearchResult{DocketNumber: "", DocumentType: "Order"},
	)
	api.AddSearchResults("decision",
		dawson.SearchResult{DocketNumber: "200-21", DocumentType: "Order"},
		dawson.SearchResult{DocketNumber: "300-21", DocumentType: "Order"},
	)
	api.FailSearch("motion", http.StatusInternalServerError)

	s := NewSearchAggregator(newSearchClient(t, api), matcher.New([]string{"order"}, matcher.Substring), nil, nil)
	cases := s.Search(context.Background(), []string{"order", "motion", "decision"})

	assert.Equal(t, []string{"100-21", "200-21", "300-21"}, cases)
	assert.Equal(t, 3, api.Calls(fakeapi.KindSearch))
}

func TestSearchAggregatorStopsWhenCancelled(t *testing.T) {
	api := fakeapi.New()
	defer api.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSearchAggregator(newSearchClient(t, api), matcher.New([]string{"order"}, matcher.Substring), nil, nil)
	assert.Empty(t, s.Search(ctx, []string{"order", "decision"}))
	assert.Equal(t, 0, api.TotalCalls())
}

func TestDiscover(t *testing.T) {
	api := fakeapi.New()
	defer api.Close()
	api.AddSearchResults("order",
		dawson.SearchResult{DocketNumber: "1-21", DocumentType: "Order"},
		dawson.SearchResult{DocketNumber: "2-21", DocumentType: "Order"},
		dawson.SearchResult{DocketNumber: "3-21", DocumentType: ""},
	)
	api.AddSearchResults("decision",
		dawson.SearchResult{DocketNumber: "1-21", DocumentType: "Decision"},
		dawson.SearchResult{DocketNumber: "4-21", DocumentType: "Order"},
	)
	api.FailSearch("motion", http.StatusServiceUnavailable)

	d := NewDiscoverer(newSearchClient(t, api), nil, nil)
	cat, err := d.Discover(context.Background())
	require.NoError(t, err)

	assert.Equal(t, len(DiscoveryKeywords), api.Calls(fakeapi.KindSearch))
	assert.Equal(t, 2, cat.TotalTypes)
	assert.Equal(t, "Order", cat.Types[0].Type)
	assert.Equal(t, 3, cat.Types[0].Count)
	assert.Equal(t, "Decision", cat.Types[1].Type)
}

func TestDiscoverCancelled(t *testing.T) {
	api := fakeapi.New()
	defer api.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDiscoverer(newSearchClient(t, api), nil, nil).Discover(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
