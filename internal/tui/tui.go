// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is an interactive terminal front end that searches arXiv
// as the user types.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jroimartin/gocui"

	"github.com/pdiddy/arxiv-search/internal/category"
	"github.com/pdiddy/arxiv-search/internal/pipeline"
	"github.com/pdiddy/arxiv-search/pkg/types"
)

const (
	viewInput    = "input"
	viewCategory = "category"
	viewResults  = "results"
	viewStatus   = "status"

	placeholder = "Search arXiv papers by title, author, or abstract"
)

// Desktop performs row actions. *actions.Desktop implements it.
type Desktop interface {
	OpenPDF(pdfLink string) error
	CopyAuthors(authors []string) (string, error)
}

// Bookmarker saves papers to the reading list. *library.Store implements it.
type Bookmarker interface {
	Save(ctx context.Context, p types.Paper) error
}

// UI is the terminal search screen.
type UI struct {
	ctx      context.Context
	g        *gocui.Gui
	runner   *pipeline.Runner
	debounce *pipeline.Debouncer
	desktop  Desktop
	library  Bookmarker
	log      *slog.Logger
	m        *model

	// typed is the input text last scheduled for search.
	typed string
}

// New creates the screen. library may be nil to disable bookmarks.
func New(ctx context.Context, p *pipeline.Pipeline, cfg types.SearchConfig, desktop Desktop, library Bookmarker, log *slog.Logger) (*UI, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("creating terminal UI: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}

	u := &UI{
		ctx:      ctx,
		g:        g,
		debounce: pipeline.NewDebouncer(debounce),
		desktop:  desktop,
		library:  library,
		log:      log,
		m:        newModel(),
	}
	u.runner = pipeline.NewRunner(ctx, p, u.onResult)
	return u, nil
}

// Run shows the screen until the user quits.
func (u *UI) Run() error {
	defer u.g.Close()
	defer u.runner.Close()
	defer u.debounce.Stop()

	u.g.Cursor = true
	u.g.SetManagerFunc(u.layout)

	if err := u.bindKeys(); err != nil {
		return err
	}

	u.submit("")

	if err := u.g.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) {
		return err
	}
	return nil
}

func (u *UI) bindKeys() error {
	bindings := []struct {
		view string
		key  gocui.Key
		fn   func(*gocui.Gui, *gocui.View) error
	}{
		{"", gocui.KeyCtrlC, quit},
		{"", gocui.KeyArrowDown, u.moveBy(1)},
		{"", gocui.KeyArrowUp, u.moveBy(-1)},
		{"", gocui.KeyCtrlT, u.cycleCategory},
		{"", gocui.KeyCtrlO, u.openPDF},
		{"", gocui.KeyCtrlY, u.copyAuthors},
		{"", gocui.KeyCtrlB, u.bookmark},
		{viewInput, gocui.KeyEnter, u.searchNow},
	}
	for _, b := range bindings {
		if err := u.g.SetKeybinding(b.view, b.key, gocui.ModNone, b.fn); err != nil {
			return fmt.Errorf("binding key: %w", err)
		}
	}
	return nil
}

func (u *UI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	if maxX < 20 || maxY < 10 {
		return fmt.Errorf("terminal window is too small")
	}
	split := maxX * 3 / 4

	if v, err := g.SetView(viewInput, 0, 0, split-1, 2); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = placeholder
		v.Editable = true
		v.Editor = gocui.EditorFunc(u.edit)
		if _, err := g.SetCurrentView(viewInput); err != nil {
			return err
		}
	}

	if v, err := g.SetView(viewCategory, split, 0, maxX-1, 2); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = "Category"
	}

	if v, err := g.SetView(viewResults, 0, 3, maxX-1, maxY-4); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Wrap = false
	}

	if v, err := g.SetView(viewStatus, 0, maxY-3, maxX-1, maxY-1); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Frame = true
	}

	return u.render(g)
}

// edit applies the keystroke and schedules a debounced search.
func (u *UI) edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) {
	gocui.DefaultEditor.Edit(v, key, ch, mod)
	text := strings.TrimSpace(v.Buffer())
	if text == u.typed {
		return
	}
	u.typed = text
	facet := u.m.facet
	u.m.loading = true
	u.debounce.Call(func() { u.runner.Submit(text, facet) })
}

func (u *UI) submit(text string) {
	u.debounce.Stop()
	u.typed = text
	u.m.loading = true
	u.runner.Submit(text, u.m.facet)
}

func (u *UI) searchNow(g *gocui.Gui, v *gocui.View) error {
	u.submit(strings.TrimSpace(v.Buffer()))
	return u.render(g)
}

// onResult runs on the runner's goroutine; state changes are handed to
// the main loop.
func (u *UI) onResult(res pipeline.Result) {
	u.g.Update(func(g *gocui.Gui) error {
		u.m.apply(res)
		return u.render(g)
	})
}

func (u *UI) moveBy(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, _ *gocui.View) error {
		u.m.move(delta)
		return u.render(g)
	}
}

func (u *UI) cycleCategory(g *gocui.Gui, _ *gocui.View) error {
	u.m.facet = category.Next(u.m.facet)
	text := ""
	if v, err := g.View(viewInput); err == nil {
		text = strings.TrimSpace(v.Buffer())
	}
	u.submit(text)
	return u.render(g)
}

func (u *UI) openPDF(g *gocui.Gui, _ *gocui.View) error {
	p, ok := u.m.current()
	if !ok {
		return nil
	}
	if err := u.desktop.OpenPDF(p.PDFLink); err != nil {
		u.m.notice = "Open failed: " + err.Error()
	} else {
		u.m.notice = "Opened " + p.PDFLink
	}
	return u.render(g)
}

func (u *UI) copyAuthors(g *gocui.Gui, _ *gocui.View) error {
	p, ok := u.m.current()
	if !ok {
		return nil
	}
	text, err := u.desktop.CopyAuthors(p.Authors)
	if err != nil {
		u.m.notice = "Copy failed: " + err.Error()
	} else {
		u.m.notice = "Copied: " + text
	}
	return u.render(g)
}

func (u *UI) bookmark(g *gocui.Gui, _ *gocui.View) error {
	p, ok := u.m.current()
	if !ok {
		return nil
	}
	if u.library == nil {
		u.m.notice = "Reading list unavailable"
		return u.render(g)
	}
	if err := u.library.Save(u.ctx, p); err != nil {
		u.log.Warn("bookmark failed", "id", p.ID, "error", err)
		u.m.notice = "Bookmark failed: " + err.Error()
	} else {
		u.m.notice = "Saved " + p.ArxivID() + " to reading list"
	}
	return u.render(g)
}

func (u *UI) render(g *gocui.Gui) error {
	if v, err := g.View(viewCategory); err == nil {
		v.Clear()
		fmt.Fprint(v, category.Label(u.m.facet))
	}

	if v, err := g.View(viewResults); err == nil {
		v.Clear()
		v.Title = u.m.resultsTitle()
		writeResults(v, u.m.papers, u.m.selected, time.Now())
		keepVisible(v, u.m.selected*2)
	}

	if v, err := g.View(viewStatus); err == nil {
		v.Clear()
		fmt.Fprint(v, u.m.status())
	}
	return nil
}

// keepVisible scrolls v so that line and the line after it are shown.
func keepVisible(v *gocui.View, line int) {
	_, sy := v.Size()
	_, oy := v.Origin()
	switch {
	case line < oy:
		v.SetOrigin(0, line)
	case line+2 > oy+sy:
		v.SetOrigin(0, line+2-sy)
	}
}

func quit(_ *gocui.Gui, _ *gocui.View) error {
	return gocui.ErrQuit
}
