// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"context"
	"net/http"

	"github.com/pdiddy/arxiv-search/internal/httputil"
	"github.com/pdiddy/arxiv-search/pkg/types"
)

// Client fetches raw Atom documents from the arXiv query endpoint.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
}

// NewClient returns a Client configured from cfg.
func NewClient(cfg types.SearchConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		HTTP:      &http.Client{Timeout: cfg.Timeout},
		BaseURL:   base,
		UserAgent: cfg.UserAgent,
	}
}

// URL returns the request URL for q.
func (c *Client) URL(q types.SearchQuery) string {
	return c.BaseURL + "?" + q.Values().Encode()
}

// Fetch performs the GET request for q and returns the unparsed feed.
// Failures are *httputil.TransportError values.
func (c *Client) Fetch(ctx context.Context, q types.SearchQuery) ([]byte, error) {
	return httputil.Get(ctx, c.HTTP, c.URL(q), c.UserAgent)
}
