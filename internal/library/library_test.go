// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-search/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.LibraryConfig{Path: filepath.Join(t.TempDir(), "nested", "library.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

var attention = types.Paper{
	ID:        "http://arxiv.org/abs/1706.03762v7",
	Published: "2017-06-12T17:57:34Z",
	Title:     "Attention Is All You Need",
	Authors:   []string{"Ashish Vaswani", "Noam Shazeer"},
	Category:  "cs.CL, cs.LG",
	PDFLink:   "http://arxiv.org/pdf/1706.03762v7",
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, attention))

	e, err := s.Get(ctx, "1706.03762")
	require.NoError(t, err)
	assert.Equal(t, attention, e.Paper)
	assert.False(t, e.SavedAt.IsZero())
}

func TestSaveReplacesSamePaper(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, attention))
	newer := attention
	newer.ID = "http://arxiv.org/abs/1706.03762v8"
	require.NoError(t, s.Save(ctx, newer))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, newer.ID, entries[0].Paper.ID)
}

func TestSaveWithoutAuthors(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := types.Paper{ID: "http://arxiv.org/abs/2401.00001v1", Title: "Untitled", Authors: []string{}}
	require.NoError(t, s.Save(ctx, p))

	e, err := s.Get(ctx, "2401.00001")
	require.NoError(t, err)
	assert.NotNil(t, e.Paper.Authors)
	assert.Empty(t, e.Paper.Authors)
}

func TestSaveRequiresID(t *testing.T) {
	s := openTestStore(t)
	assert.Error(t, s.Save(context.Background(), types.Paper{Title: "no id"}))
}

func TestListEmpty(t *testing.T) {
	s := openTestStore(t)

	entries, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestRemove(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, attention))
	require.NoError(t, s.Remove(ctx, "1706.03762"))

	_, err := s.Get(ctx, "1706.03762")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Remove(ctx, "1706.03762"), ErrNotFound)
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open(types.LibraryConfig{})
	assert.Error(t, err)
}
