// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-search/internal/feed"
	"github.com/pdiddy/arxiv-search/internal/httputil"
	"github.com/pdiddy/arxiv-search/internal/pipeline"
	"github.com/pdiddy/arxiv-search/pkg/types"
)

func samplePapers() []types.Paper {
	return []types.Paper{
		{
			ID:        "http://arxiv.org/abs/1706.03762v7",
			Published: "2017-06-12T17:57:34Z",
			Title:     "Attention Is All You Need",
			Authors:   []string{"Ashish Vaswani", "Noam Shazeer"},
			Category:  "cs.CL, cs.LG",
			PDFLink:   "http://arxiv.org/pdf/1706.03762v7",
		},
		{
			ID:       "http://arxiv.org/abs/hep-th/9901001v1",
			Title:    "Strings",
			Authors:  []string{"Solo Author"},
			Category: "hep-th",
		},
		{
			ID:      "http://arxiv.org/abs/2101.00001v1",
			Title:   "Untagged",
			Authors: []string{},
		},
	}
}

func TestModelApply(t *testing.T) {
	m := newModel()
	m.loading = true
	m.notice = "Copied: x"
	m.selected = 2

	m.apply(pipeline.Result{
		Query:  types.SearchQuery{SearchText: "attention"},
		Papers: samplePapers(),
	})

	assert.False(t, m.loading)
	assert.Empty(t, m.notice)
	assert.Equal(t, 0, m.selected)
	assert.Equal(t, "attention", m.query)
	assert.Equal(t, "Results (3)", m.resultsTitle())
}

func TestModelMove(t *testing.T) {
	tests := []struct {
		name  string
		moves []int
		want  int
	}{
		{"down once", []int{1}, 1},
		{"clamped at bottom", []int{1, 1, 1, 1}, 2},
		{"clamped at top", []int{-1}, 0},
		{"down then up", []int{1, 1, -1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel()
			m.apply(pipeline.Result{Papers: samplePapers()})
			for _, d := range tt.moves {
				m.move(d)
			}
			assert.Equal(t, tt.want, m.selected)
			p, ok := m.current()
			require.True(t, ok)
			assert.Equal(t, samplePapers()[tt.want].ID, p.ID)
		})
	}
}

func TestModelMoveEmpty(t *testing.T) {
	m := newModel()
	m.move(1)
	assert.Equal(t, 0, m.selected)
	_, ok := m.current()
	assert.False(t, ok)
}

func TestModelStatus(t *testing.T) {
	transport := &httputil.TransportError{URL: "http://x", StatusCode: 503}
	tests := []struct {
		name    string
		model   model
		want    string
		wantSub string
	}{
		{name: "loading", model: model{loading: true}, want: "Searching..."},
		{name: "notice wins", model: model{notice: "Saved 1706.03762 to reading list"}, want: "Saved 1706.03762 to reading list"},
		{name: "no results", model: model{papers: []types.Paper{}}, want: "No results"},
		{
			name:  "malformed",
			model: model{err: fmt.Errorf("%w: EOF", feed.ErrMalformedFeed)},
			want:  "Search failed: arXiv returned an unreadable response",
		},
		{name: "transport", model: model{err: transport}, wantSub: "Search failed: "},
		{name: "results", model: model{query: "attention", papers: samplePapers()}, wantSub: `"attention"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.model.status()
			if tt.want != "" {
				assert.Equal(t, tt.want, got)
			}
			if tt.wantSub != "" {
				assert.Contains(t, got, tt.wantSub)
			}
		})
	}
}

func TestModelStatusErrorIsNotEmptyResult(t *testing.T) {
	failed := model{papers: []types.Paper{}, err: errors.New("boom")}
	empty := model{papers: []types.Paper{}}
	assert.NotEqual(t, failed.status(), empty.status())
}

func TestWriteResults(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	writeResults(&buf, samplePapers(), 1, now)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)

	assert.Equal(t, "  Attention Is All You Need", lines[0])
	assert.Contains(t, lines[1], "Ashish Vaswani et al.")
	assert.Contains(t, lines[1], "\033[34mcs.CL, cs.LG\033[0m")
	assert.Contains(t, lines[1], "years ago")

	assert.Equal(t, "> Strings", lines[2])
	assert.Contains(t, lines[3], "Solo Author")
	assert.NotContains(t, lines[3], "et al.")
	assert.Contains(t, lines[3], "\033[31mhep-th\033[0m")

	assert.Equal(t, "  Untagged", lines[4])
	assert.Equal(t, "    ", lines[5])
}

func TestWriteResultsEmpty(t *testing.T) {
	var buf bytes.Buffer
	writeResults(&buf, nil, 0, time.Now())
	assert.Empty(t, buf.String())
}
