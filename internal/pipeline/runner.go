// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pdiddy/arxiv-search/internal/category"
)

// Runner coordinates overlapping passes with last-query-wins semantics.
// Every Submit takes a new generation and cancels the run it supersedes;
// a run that completes after a newer Submit is discarded, so the current
// result only ever moves forward.
type Runner struct {
	pipeline *Pipeline
	onResult func(Result)

	parent context.Context
	wg     sync.WaitGroup

	// mu orders Submit against publish; gen and closed only change under it.
	mu      sync.Mutex
	gen     atomic.Uint64
	closed  bool
	cancel  context.CancelFunc
	current atomic.Pointer[Result]
}

// NewRunner returns a Runner whose runs derive from ctx. onResult, if
// non-nil, is called once per published result, in generation order. It
// runs with the Runner locked and must not call Submit synchronously.
func NewRunner(ctx context.Context, p *Pipeline, onResult func(Result)) *Runner {
	return &Runner{pipeline: p, onResult: onResult, parent: ctx}
}

// Submit starts a pass for text and facet and returns its generation.
// After Close it starts nothing and returns the last generation.
func (r *Runner) Submit(text string, facet category.Facet) uint64 {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return r.gen.Load()
	}
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(r.parent)
	r.cancel = cancel
	gen := r.gen.Add(1)
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer cancel()

		res, _ := r.pipeline.Run(ctx, text, facet)
		res.Generation = gen
		r.publish(res)
	}()
	return gen
}

func (r *Runner) publish(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	if latest := r.gen.Load(); res.Generation != latest {
		r.pipeline.log.Debug("discarding stale result",
			"run_id", res.RunID,
			"generation", res.Generation,
			"latest", latest)
		return
	}
	r.current.Store(&res)
	if r.onResult != nil {
		r.onResult(res)
	}
}

// Current returns the latest published result, or nil before the first.
func (r *Runner) Current() *Result {
	return r.current.Load()
}

// Generation returns the generation of the most recent Submit.
func (r *Runner) Generation() uint64 {
	return r.gen.Load()
}

// Wait blocks until every submitted run has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Close cancels the in-flight run and waits for all runs to return.
// Nothing is published once Close has been called.
func (r *Runner) Close() {
	r.mu.Lock()
	r.closed = true
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()
	r.wg.Wait()
}

// Debouncer delays a call until no newer call has arrived for the quiet
// period, so a burst of keystrokes produces a single search.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer returns a Debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Call schedules fn, replacing any call still waiting.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop drops the pending call, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
