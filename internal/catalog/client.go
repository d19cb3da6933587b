// Package catalog implements the client for the external movie catalog
// (TMDB). It holds no local state; search results pass through to the
// caller as the upstream returned them.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/moviefave/moviefave/middleware"
)

// Movie is a movie record as returned by the catalog search endpoint,
// keyed by the catalog's own id.
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
}

// UpstreamError describes a failed catalog call. The message stays
// server-side; handlers must not forward it to clients.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("catalog upstream error (status %d): %s", e.Status, e.Message)
}

// Client talks to the TMDB search API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a catalog Client. httpClient may be nil, in which case
// http.DefaultClient is used.
func New(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, apiKey: apiKey, http: httpClient}
}

type searchResponse struct {
	Results []Movie `json:"results"`
}

// Search forwards the query to the catalog search endpoint and returns
// the result list unmodified. Timeouts, non-2xx responses, and
// malformed bodies all surface as *UpstreamError.
func (c *Client) Search(ctx context.Context, query string) ([]Movie, error) {
	ctx, span := middleware.StartSpan(ctx, "catalog.search", trace.WithAttributes(
		attribute.String("layer", "catalog"),
	))
	defer span.End()

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/search/movie?"+params.Encode(), nil)
	if err != nil {
		span.RecordError(err)
		return nil, &UpstreamError{Message: err.Error()}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("upstream.status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("unexpected status %s", resp.Status),
		}
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		span.RecordError(err)
		return nil, &UpstreamError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("decode response: %v", err),
		}
	}

	if body.Results == nil {
		body.Results = []Movie{}
	}

	return body.Results, nil
}
