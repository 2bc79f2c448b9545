package dawson

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/toestah/dawson-extractor/pkg/config"
	errs "github.com/toestah/dawson-extractor/pkg/errors"
	"github.com/toestah/dawson-extractor/pkg/logger"
	"github.com/toestah/dawson-extractor/pkg/ratelimit"
	"github.com/toestah/dawson-extractor/pkg/stats"
)

// Client represents a case-management API client
type Client struct {
	httpClient     *http.Client
	downloadClient *http.Client
	baseURL        string
	userAgent      string
	searchLimit    int
	limiter        ratelimit.Limiter
	stats          *stats.Run
	logger         logger.Logger
}

// NewClient creates a client for the configured environment. The limiter and
// run counters are shared with the rest of the run.
func NewClient(cfg *config.APIConfig, limiter ratelimit.Limiter, run *stats.Run, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}
	if limiter == nil {
		limiter = ratelimit.Unlimited{}
	}
	if run == nil {
		run = stats.New()
	}

	return &Client{
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		downloadClient: &http.Client{Timeout: cfg.DownloadTimeout},
		baseURL:        ResolveBaseURL(cfg.Environment, cfg.BaseURL),
		userAgent:      cfg.UserAgent,
		searchLimit:    cfg.SearchLimit,
		limiter:        limiter,
		stats:          run,
		logger:         log,
	}
}

// BaseURL returns the resolved API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Stats returns the counters this client writes to
func (c *Client) Stats() *stats.Run {
	return c.stats
}

// Request performs a rate-limited GET against path and returns the raw JSON
// body. Every invocation counts as an API call; every failure also counts as
// an error.
func (c *Client) Request(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	body, err := c.get(ctx, c.httpClient, path, target)
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		return nil, c.fail(errs.Malformed(path, "response is not valid JSON"))
	}
	return json.RawMessage(body), nil
}

// Search runs one keyword search across all filing dates
func (c *Client) Search(ctx context.Context, keyword string) (*SearchResponse, error) {
	c.logger.DebugWithFields("searching documents", map[string]interface{}{
		"keyword": keyword,
	})

	var response SearchResponse
	if err := c.getJSON(ctx, SearchEndpoint, SearchQuery(keyword, c.searchLimit), &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// CaseDetails fetches a case's full docket
func (c *Client) CaseDetails(ctx context.Context, docketNumber string) (*CaseDetails, error) {
	var details CaseDetails
	if err := c.getJSON(ctx, CasePath(docketNumber), nil, &details); err != nil {
		return nil, err
	}
	if details.DocketNumber == "" {
		details.DocketNumber = docketNumber
	}
	return &details, nil
}

// DownloadURL resolves the signed URL for one document
func (c *Client) DownloadURL(ctx context.Context, docketNumber, documentID string) (string, error) {
	path := DownloadURLPath(docketNumber, documentID)

	var response DownloadURLResponse
	if err := c.getJSON(ctx, path, nil, &response); err != nil {
		return "", err
	}
	if strings.TrimSpace(response.URL) == "" {
		return "", c.fail(errs.Malformed(path, "missing url field"))
	}
	return response.URL, nil
}

// FetchDocument downloads the binary payload behind a signed URL using the
// longer download timeout
func (c *Client) FetchDocument(ctx context.Context, documentURL string) ([]byte, error) {
	return c.get(ctx, c.downloadClient, redactURL(documentURL), documentURL)
}

// getJSON performs a request and decodes the body into target
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target interface{}) error {
	raw, err := c.Request(ctx, path, query)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, target); err != nil {
		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"endpoint":     path,
			"error":        err.Error(),
			"body_preview": errs.BodyPreview(string(raw)),
		})
		return c.fail(errs.Malformed(path, fmt.Sprintf("failed to parse JSON: %v", err)))
	}
	return nil
}

// get waits on the limiter, issues the GET and returns the body of a 2xx
// response. endpoint labels logs and errors. A call abandoned while waiting
// sends nothing and is not counted.
func (c *Client) get(ctx context.Context, client *http.Client, endpoint, target string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errs.Transport(endpoint, err)
	}
	c.stats.IncAPICalls()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, c.fail(errs.Transport(endpoint, fmt.Errorf("failed to create request: %w", err)))
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		logger.LogAPICall(c.logger, endpoint, 0, time.Since(start))
		return nil, c.fail(errs.Transport(endpoint, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	logger.LogAPICall(c.logger, endpoint, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, c.fail(errs.Transport(endpoint, fmt.Errorf("failed to read response body: %w", err)))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.fail(errs.HTTPStatus(endpoint, resp.StatusCode, string(body)))
	}
	return body, nil
}

// fail counts and logs a failed call, then hands the error back
func (c *Client) fail(err *errs.Error) error {
	c.stats.IncErrors()

	fields := map[string]interface{}{
		"endpoint":   err.Endpoint,
		"error_type": string(err.Type),
	}
	if err.Status != 0 {
		fields["status"] = err.Status
	}
	c.logger.WithError(err).WarnWithFields("API call failed", fields)
	return err
}
