// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the arxiv-search pipeline.
// Implements: Paper (normalized feed entry), SearchQuery (upstream parameter
// set), Row (presentation record) and the configuration tree.
package types

import (
	"strconv"
	"strings"
)

// Paper is a normalized arXiv feed entry. Every field always holds a value:
// strings default to "" and Authors to an empty, non-nil slice. Papers are
// passed by value and never modified after the feed parser produces them.
type Paper struct {
	// ID is the external identifier in URL form
	// (e.g. "http://arxiv.org/abs/1706.03762v7").
	ID string `json:"id" yaml:"id"`

	// Published is the ISO-8601 publication timestamp as sent upstream, or "".
	Published string `json:"published" yaml:"published"`

	// Title is the paper title with internal whitespace runs collapsed.
	Title string `json:"title" yaml:"title"`

	// Authors lists author names in feed order.
	Authors []string `json:"authors" yaml:"authors"`

	// Category is the comma-joined list of subject tags (e.g. "cs.CL, cs.LG").
	Category string `json:"category" yaml:"category"`

	// PDFLink is the URL of the PDF rendition, or "" when the feed has none.
	PDFLink string `json:"pdf_link" yaml:"pdf_link"`
}

// ArxivID returns the short arXiv identifier without version suffix
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041"). Old-style ids
// keep their archive prefix ("hep-th/9901001"). Returns ID unchanged when it
// carries no "/abs/" segment.
func (p Paper) ArxivID() string {
	const prefix = "/abs/"
	idx := strings.Index(p.ID, prefix)
	if idx < 0 {
		return p.ID
	}
	id := p.ID[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}

// Tags splits Category back into its individual subject tags.
func (p Paper) Tags() []string {
	if p.Category == "" {
		return nil
	}
	parts := strings.Split(p.Category, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
