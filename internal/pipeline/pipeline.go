// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one search pass (build query, fetch, parse, rank,
// filter) and coordinates overlapping passes so that only the most recent
// query can update what is displayed.
package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/arxiv-search/internal/arxiv"
	"github.com/pdiddy/arxiv-search/internal/category"
	"github.com/pdiddy/arxiv-search/internal/feed"
	"github.com/pdiddy/arxiv-search/internal/rank"
	"github.com/pdiddy/arxiv-search/pkg/types"
)

// Fetcher retrieves the raw feed for a query. *arxiv.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, q types.SearchQuery) ([]byte, error)
}

// Result is the outcome of one pass. Papers is never nil. Err is set for
// transport and malformed-document faults; a successful search with no
// matches has an empty Papers and a nil Err.
type Result struct {
	RunID      string
	Generation uint64
	Query      types.SearchQuery
	Facet      category.Facet
	Papers     []types.Paper
	Err        error
	Elapsed    time.Duration
}

// Pipeline performs search passes against a Fetcher.
type Pipeline struct {
	fetcher Fetcher
	cfg     types.SearchConfig
	log     *slog.Logger
}

// New returns a Pipeline. A nil logger discards output.
func New(fetcher Fetcher, cfg types.SearchConfig, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{fetcher: fetcher, cfg: cfg, log: log}
}

// Run executes one pass for text and facet. Fetching is the only step
// that blocks and it honours ctx. On failure the returned Result carries
// the same error with an empty Papers slice.
func (p *Pipeline) Run(ctx context.Context, text string, facet category.Facet) (Result, error) {
	start := time.Now()
	res := Result{
		RunID:  uuid.NewString(),
		Query:  arxiv.BuildQuery(text, p.cfg),
		Facet:  facet,
		Papers: []types.Paper{},
	}
	log := p.log.With("run_id", res.RunID, "query", res.Query.SearchText, "facet", string(facet))

	body, err := p.fetcher.Fetch(ctx, res.Query)
	if err != nil {
		return p.fail(log, res, start, err)
	}

	papers, err := feed.ParseBytes(body)
	if err != nil {
		return p.fail(log, res, start, err)
	}

	ranked := rank.Rank(papers, res.Query.SearchText)
	res.Papers = category.Filter(ranked, facet)
	res.Elapsed = time.Since(start)

	log.Debug("search complete",
		"entries", len(papers),
		"shown", len(res.Papers),
		"elapsed", res.Elapsed)
	return res, nil
}

func (p *Pipeline) fail(log *slog.Logger, res Result, start time.Time, err error) (Result, error) {
	res.Err = err
	res.Elapsed = time.Since(start)
	if errors.Is(err, context.Canceled) {
		log.Debug("search cancelled", "error", err)
	} else {
		log.Warn("search failed", "error", err)
	}
	return res, err
}
