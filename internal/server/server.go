// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the search pipeline as a small JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pdiddy/arxiv-search/internal/category"
	"github.com/pdiddy/arxiv-search/internal/feed"
	"github.com/pdiddy/arxiv-search/internal/pipeline"
	"github.com/pdiddy/arxiv-search/internal/present"
	"github.com/pdiddy/arxiv-search/pkg/types"
)

// Searcher runs one pipeline pass. *pipeline.Pipeline implements it.
type Searcher interface {
	Run(ctx context.Context, text string, facet category.Facet) (pipeline.Result, error)
}

// Server is the HTTP adapter.
type Server struct {
	searcher Searcher
	log      *slog.Logger
	router   chi.Router
	now      func() time.Time
}

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Query    string      `json:"query"`
	Category string      `json:"category"`
	Total    int         `json:"total"`
	Rows     []types.Row `json:"rows"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// New returns a Server answering with searcher.
func New(searcher Searcher, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{searcher: searcher, log: log, now: time.Now}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/categories", s.handleCategories)
	})

	s.router = r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	facet, err := category.ParseFacet(r.URL.Query().Get("category"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "bad_request"})
		return
	}

	res, err := s.searcher.Run(r.Context(), r.URL.Query().Get("q"), facet)
	if errors.Is(err, context.Canceled) {
		s.log.Debug("client went away", "path", r.URL.Path)
		return
	}
	if err != nil {
		kind := "transport"
		if errors.Is(err, feed.ErrMalformedFeed) {
			kind = "malformed_document"
		}
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Kind: kind})
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Query:    res.Query.SearchText,
		Category: string(facet),
		Total:    len(res.Papers),
		Rows:     present.Rows(res.Papers, s.now()),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, category.Facets())
}

// logRequests logs one line per request through slog.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Info("request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"elapsed", time.Since(start))
		}()
		next.ServeHTTP(ww, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
