// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-search/internal/category"
	"github.com/pdiddy/arxiv-search/internal/feed"
	"github.com/pdiddy/arxiv-search/internal/pipeline"
	"github.com/pdiddy/arxiv-search/internal/present"
	"github.com/pdiddy/arxiv-search/pkg/types"
)

// model is the screen state. It is only touched from the gocui main loop.
type model struct {
	facet    category.Facet
	query    string
	papers   []types.Paper
	selected int
	loading  bool
	err      error
	notice   string
}

func newModel() *model {
	return &model{facet: category.All, papers: []types.Paper{}}
}

// apply replaces the displayed results with res.
func (m *model) apply(res pipeline.Result) {
	m.loading = false
	m.query = res.Query.SearchText
	m.papers = res.Papers
	m.err = res.Err
	m.notice = ""
	m.selected = 0
}

func (m *model) move(delta int) {
	if len(m.papers) == 0 {
		m.selected = 0
		return
	}
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= len(m.papers) {
		m.selected = len(m.papers) - 1
	}
}

func (m *model) current() (types.Paper, bool) {
	if m.selected < 0 || m.selected >= len(m.papers) {
		return types.Paper{}, false
	}
	return m.papers[m.selected], true
}

func (m *model) resultsTitle() string {
	return fmt.Sprintf("Results (%d)", len(m.papers))
}

// status distinguishes a failed search from one with no matches.
func (m *model) status() string {
	switch {
	case m.loading:
		return "Searching..."
	case m.notice != "":
		return m.notice
	case m.err != nil && errors.Is(m.err, feed.ErrMalformedFeed):
		return "Search failed: arXiv returned an unreadable response"
	case m.err != nil:
		return "Search failed: " + m.err.Error()
	case len(m.papers) == 0:
		return "No results"
	default:
		return fmt.Sprintf("%q  ^T category  ^O open PDF  ^Y copy authors  ^B bookmark  ^C quit", m.query)
	}
}

var ansiColors = map[string]string{
	"blue":    "34",
	"green":   "32",
	"red":     "31",
	"yellow":  "33",
	"magenta": "35",
	"cyan":    "36",
	"orange":  "33",
	"purple":  "35",
}

// writeResults renders two lines per paper, marking the selected one.
func writeResults(w io.Writer, papers []types.Paper, selected int, now time.Time) {
	for i, row := range present.Rows(papers, now) {
		marker := "  "
		if i == selected {
			marker = "> "
		}
		fmt.Fprintf(w, "%s%s\n", marker, row.Title)

		meta := []string{}
		if row.PrimaryAuthorLabel != "" {
			meta = append(meta, row.PrimaryAuthorLabel)
		}
		if row.Category != "" {
			cat := row.Category
			if code, ok := ansiColors[row.CategoryColorTag]; ok {
				cat = "\033[" + code + "m" + cat + "\033[0m"
			}
			meta = append(meta, cat)
		}
		if row.PublishedRelativeTime != "" {
			meta = append(meta, row.PublishedRelativeTime)
		}
		fmt.Fprintf(w, "    %s\n", strings.Join(meta, " · "))
	}
}
