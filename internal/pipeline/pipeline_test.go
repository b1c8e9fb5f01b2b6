// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-search/internal/arxiv"
	"github.com/pdiddy/arxiv-search/internal/category"
	"github.com/pdiddy/arxiv-search/internal/feed"
	"github.com/pdiddy/arxiv-search/internal/httputil"
	"github.com/pdiddy/arxiv-search/pkg/types"
)

const sampleFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2001.00001v1</id>
    <published>2020-01-01T00:00:00Z</published>
    <title>A Survey of Something Else</title>
    <author><name>Jane Roe</name></author>
    <category term="math.AG"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/1706.03762v7</id>
    <published>2017-06-12T17:57:34Z</published>
    <title>Attention Is All You Need</title>
    <author><name>Ashish Vaswani</name></author>
    <author><name>Noam Shazeer</name></author>
    <link title="pdf" href="http://arxiv.org/pdf/1706.03762v7" rel="related" type="application/pdf"/>
    <category term="cs.CL"/>
    <category term="cs.LG"/>
  </entry>
</feed>`

func testCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig:   types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "test/0.1"},
		DefaultQuery: "Attention Is All You Need",
		MaxResults:   10,
	}
}

// fakeFetcher serves canned bodies keyed by search text.
type fakeFetcher struct {
	bodies map[string]string
	delays map[string]time.Duration
	err    error
}

func (f *fakeFetcher) Fetch(_ context.Context, q types.SearchQuery) ([]byte, error) {
	if d := f.delays[q.SearchText]; d > 0 {
		time.Sleep(d)
	}
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.bodies[q.SearchText]
	if !ok {
		return nil, fmt.Errorf("unexpected query %q", q.SearchText)
	}
	return []byte(body), nil
}

func TestRunRanksAndFilters(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleFeedXML)
	}))
	defer ts.Close()

	cfg := testCfg()
	cfg.BaseURL = ts.URL
	p := New(arxiv.NewClient(cfg), cfg, nil)

	res, err := p.Run(context.Background(), "Attention Is All You Need", category.All)
	require.NoError(t, err)
	require.NoError(t, res.Err)
	require.Len(t, res.Papers, 2)
	assert.Equal(t, "Attention Is All You Need", res.Papers[0].Title)
	assert.NotEmpty(t, res.RunID)

	res, err = p.Run(context.Background(), "Attention Is All You Need", category.Mathematics)
	require.NoError(t, err)
	require.Len(t, res.Papers, 1)
	assert.Equal(t, "A Survey of Something Else", res.Papers[0].Title)
}

func TestRunEmptyTextUsesDefault(t *testing.T) {
	f := &fakeFetcher{bodies: map[string]string{"Attention Is All You Need": sampleFeedXML}}
	p := New(f, testCfg(), nil)

	res, err := p.Run(context.Background(), "", category.All)
	require.NoError(t, err)
	assert.Equal(t, "Attention Is All You Need", res.Query.SearchText)
	assert.Len(t, res.Papers, 2)
}

func TestRunNoMatchesIsNotAnError(t *testing.T) {
	f := &fakeFetcher{bodies: map[string]string{"q": sampleFeedXML}}
	p := New(f, testCfg(), nil)

	res, err := p.Run(context.Background(), "q", category.Economics)
	require.NoError(t, err)
	assert.NoError(t, res.Err)
	assert.NotNil(t, res.Papers)
	assert.Empty(t, res.Papers)
}

func TestRunMalformedDocument(t *testing.T) {
	f := &fakeFetcher{bodies: map[string]string{"q": `<feed xmlns="http://www.w3.org/2005/Atom"><entry><title>cut`}}
	p := New(f, testCfg(), nil)

	res, err := p.Run(context.Background(), "q", category.All)
	require.Error(t, err)
	assert.ErrorIs(t, err, feed.ErrMalformedFeed)
	assert.ErrorIs(t, res.Err, feed.ErrMalformedFeed)
	assert.NotNil(t, res.Papers)
	assert.Empty(t, res.Papers)
}

func TestRunTransportFault(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	cfg := testCfg()
	cfg.BaseURL = ts.URL
	p := New(arxiv.NewClient(cfg), cfg, nil)

	res, err := p.Run(context.Background(), "x", category.All)
	var te *httputil.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusInternalServerError, te.StatusCode)
	assert.Empty(t, res.Papers)
}

// --- Runner ---

func TestRunnerDiscardsStaleResult(t *testing.T) {
	other := `<feed xmlns="http://www.w3.org/2005/Atom"><entry><id>new</id><title>Newer</title></entry></feed>`
	f := &fakeFetcher{
		bodies: map[string]string{"slow": sampleFeedXML, "fast": other},
		delays: map[string]time.Duration{"slow": 100 * time.Millisecond},
	}

	var mu sync.Mutex
	var published []Result
	r := NewRunner(context.Background(), New(f, testCfg(), nil), func(res Result) {
		mu.Lock()
		published = append(published, res)
		mu.Unlock()
	})

	r.Submit("slow", category.All)
	gen := r.Submit("fast", category.All)
	r.Wait()

	cur := r.Current()
	require.NotNil(t, cur)
	assert.Equal(t, gen, cur.Generation)
	require.Len(t, cur.Papers, 1)
	assert.Equal(t, "Newer", cur.Papers[0].Title)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, published, 1)
	assert.Equal(t, gen, published[0].Generation)
}

// blockingFetcher waits for cancellation on its first call.
type blockingFetcher struct {
	calls     atomic.Int32
	cancelled chan struct{}
}

func (b *blockingFetcher) Fetch(ctx context.Context, q types.SearchQuery) ([]byte, error) {
	if b.calls.Add(1) == 1 {
		<-ctx.Done()
		close(b.cancelled)
		return nil, ctx.Err()
	}
	return []byte(`<feed xmlns="http://www.w3.org/2005/Atom"></feed>`), nil
}

func TestRunnerCancelsSupersededRun(t *testing.T) {
	b := &blockingFetcher{cancelled: make(chan struct{})}
	r := NewRunner(context.Background(), New(b, testCfg(), nil), nil)

	r.Submit("first", category.All)
	// Give the first run time to reach Fetch.
	time.Sleep(20 * time.Millisecond)
	r.Submit("second", category.All)

	select {
	case <-b.cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("superseded run was not cancelled")
	}
	r.Wait()

	cur := r.Current()
	require.NotNil(t, cur)
	assert.Equal(t, uint64(2), cur.Generation)
	assert.NoError(t, cur.Err)
}

func TestRunnerCloseDropsCancelledRun(t *testing.T) {
	b := &blockingFetcher{cancelled: make(chan struct{})}
	var published atomic.Int32
	r := NewRunner(context.Background(), New(b, testCfg(), nil), func(Result) {
		published.Add(1)
	})

	gen := r.Submit("first", category.All)
	r.Close()

	<-b.cancelled
	assert.Nil(t, r.Current())
	assert.Equal(t, int32(0), published.Load())

	assert.Equal(t, gen, r.Submit("after close", category.All))
	r.Wait()
	assert.Equal(t, int32(1), b.calls.Load())
	assert.Nil(t, r.Current())
}

func TestRunnerPublishesErrors(t *testing.T) {
	f := &fakeFetcher{err: &httputil.TransportError{URL: "x", StatusCode: 503}}
	r := NewRunner(context.Background(), New(f, testCfg(), nil), nil)

	r.Submit("anything", category.All)
	r.Wait()

	cur := r.Current()
	require.NotNil(t, cur)
	assert.Error(t, cur.Err)
	assert.Empty(t, cur.Papers)
}

// --- Debouncer ---

func TestDebouncerCollapsesBurst(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var calls atomic.Int32
	var last atomic.Int32
	for i := 0; i < 5; i++ {
		v := int32(i)
		d.Call(func() {
			calls.Add(1)
			last.Store(v)
		})
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(4), last.Load())
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var calls atomic.Int32
	d.Call(func() { calls.Add(1) })
	d.Stop()

	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, calls.Load())
}
