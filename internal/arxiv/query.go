// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv builds queries for the arXiv API and fetches its Atom feed.
package arxiv

import (
	"strings"

	"github.com/pdiddy/arxiv-search/pkg/types"
)

// DefaultBaseURL is the arXiv query endpoint.
const DefaultBaseURL = "https://export.arxiv.org/api/query"

const defaultMaxResults = 20

// BuildQuery turns the user's search text into the upstream parameter set.
// Blank text is replaced by cfg.DefaultQuery; a non-positive
// cfg.MaxResults falls back to 20.
func BuildQuery(text string, cfg types.SearchConfig) types.SearchQuery {
	text = strings.TrimSpace(text)
	if text == "" {
		text = cfg.DefaultQuery
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	return types.SearchQuery{
		SearchText: text,
		MaxResults: maxResults,
		SortBy:     types.SortByRelevance,
		SortOrder:  types.SortDescending,
	}
}
