// Raw HTTP transport for the music catalog
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Inxkls/xerces/internal/shared"
)

const (
	defaultBaseURL   = "http://ws.audioscrobbler.com/2.0/"
	defaultUserAgent = "xerces"
)

// APIService issues query-string GET requests against the catalog endpoint.
//
// Every request carries the API key, format=json and the configured User-Agent.
// It does not interpret responses; [LastFMService] does.
type APIService struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
}

// NewAPIService creates a catalog transport from cfg.
//
// A nil client gets a fresh [http.Client] with the configured timeout.
func NewAPIService(cfg shared.CatalogConfig, client *http.Client) *APIService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}

	return &APIService{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		userAgent:  cfg.UserAgent,
		httpClient: client,
	}
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// OK reports a 2xx status.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Get performs a GET with params plus the api_key and format parameters and returns the raw response.
//
// Only transport failures are errors; non-2xx statuses are returned as responses.
func (a *APIService) Get(ctx context.Context, params url.Values) (*APIResponse, error) {
	u, err := url.Parse(a.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("api_key", a.apiKey)
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", a.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	var jsonData any
	if err := json.Unmarshal(body, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

// Method calls a catalog method (e.g. "album.search") with the given parameters.
func (a *APIService) Method(ctx context.Context, method string, params map[string]string) (*APIResponse, error) {
	values := url.Values{}
	values.Set("method", method)
	for k, v := range params {
		values.Set(k, v)
	}
	return a.Get(ctx, values)
}
