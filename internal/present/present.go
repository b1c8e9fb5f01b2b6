// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package present turns ranked papers into display rows and writes them
// as a table, JSON, or a YAML export file.
package present

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pdiddy/arxiv-search/internal/category"
	"github.com/pdiddy/arxiv-search/pkg/types"
)

// NewRow builds the display row for p. now anchors the relative age.
func NewRow(p types.Paper, now time.Time) types.Row {
	return types.Row{
		ID:                    p.ArxivID(),
		Title:                 p.Title,
		PrimaryAuthorLabel:    PrimaryAuthorLabel(p.Authors),
		Category:              p.Category,
		CategoryColorTag:      category.ColorTag(p.Category),
		PublishedRelativeTime: RelativeTime(p.Published, now),
		PDFLink:               p.PDFLink,
	}
}

// Rows builds one row per paper, in order.
func Rows(papers []types.Paper, now time.Time) []types.Row {
	rows := make([]types.Row, len(papers))
	for i, p := range papers {
		rows[i] = NewRow(p, now)
	}
	return rows
}

// PrimaryAuthorLabel returns the first author, with " et al." appended
// when there are more, or "" when there are none.
func PrimaryAuthorLabel(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0]
	default:
		return authors[0] + " et al."
	}
}

// AuthorList joins every author name for copying.
func AuthorList(authors []string) string {
	return strings.Join(authors, ", ")
}

// RelativeTime renders an ISO-8601 timestamp as an age relative to now
// ("3 years ago"). Missing or unparseable input yields "".
func RelativeTime(published string, now time.Time) string {
	if published == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, published)
	if err != nil {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatTable writes rows as a human-readable table to w.
func FormatTable(rows []types.Row, w io.Writer) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-22s  %-16s  %-14s  %s\n",
		"Rank", "Title", "Authors", "Category", "Published", "PDF")
	fmt.Fprintln(w, strings.Repeat("-", 140))

	for i, r := range rows {
		fmt.Fprintf(w, "%-4d  %-60s  %-22s  %-16s  %-14s  %s\n",
			i+1,
			truncate(r.Title, 60),
			truncate(r.PrimaryAuthorLabel, 22),
			truncate(r.Category, 16),
			r.PublishedRelativeTime,
			r.PDFLink)
	}

	fmt.Fprintf(w, "\n%d results\n", len(rows))
}

// FormatJSON writes rows as indented JSON to w.
func FormatJSON(rows []types.Row, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
