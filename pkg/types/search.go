// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"net/url"
	"strconv"
)

// Sort parameters accepted by the arXiv query endpoint.
const (
	SortByRelevance = "relevance"
	SortDescending  = "descending"
)

// SearchQuery is the parameter set sent to the arXiv query endpoint. It is
// built fresh for every search and never persisted.
type SearchQuery struct {
	// SearchText is the search_query value.
	SearchText string `json:"search_query" yaml:"search_query"`

	// MaxResults caps the number of entries the API returns.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// SortBy is the sort field (always "relevance").
	SortBy string `json:"sort_by" yaml:"sort_by"`

	// SortOrder is the sort direction (always "descending").
	SortOrder string `json:"sort_order" yaml:"sort_order"`
}

// Values encodes the query as URL parameters.
func (q SearchQuery) Values() url.Values {
	v := url.Values{}
	v.Set("search_query", q.SearchText)
	v.Set("sortBy", q.SortBy)
	v.Set("sortOrder", q.SortOrder)
	v.Set("max_results", strconv.Itoa(q.MaxResults))
	return v
}

// Row is one rendered line of a result list.
type Row struct {
	// ID is the short arXiv identifier (e.g. "1706.03762").
	ID string `json:"id" yaml:"id"`

	Title string `json:"title" yaml:"title"`

	// PrimaryAuthorLabel is the first author, suffixed " et al." when the
	// paper has more than one author.
	PrimaryAuthorLabel string `json:"primary_author_label" yaml:"primary_author_label"`

	Category string `json:"category" yaml:"category"`

	// CategoryColorTag names the colour associated with the paper's
	// leading subject facet.
	CategoryColorTag string `json:"category_color_tag" yaml:"category_color_tag"`

	// PublishedRelativeTime is a human-readable age such as "3 years ago",
	// or "" when the publication date is missing or unparseable.
	PublishedRelativeTime string `json:"published_relative_time" yaml:"published_relative_time"`

	PDFLink string `json:"pdf_link" yaml:"pdf_link"`
}
