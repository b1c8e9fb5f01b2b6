// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package actions performs the per-row desktop actions: opening a paper's
// PDF in the system viewer and copying its author list to the clipboard.
// Both delegate to whatever platform tool is on PATH.
package actions

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ErrNoPDF is returned when a paper has no PDF link to open.
var ErrNoPDF = errors.New("paper has no PDF link")

// tool is an external command and its leading arguments.
type tool struct {
	bin  string
	args []string
}

// Candidate tools in preference order.
var (
	openers = []tool{
		{bin: "xdg-open"},
		{bin: "open"},
		{bin: "wslview"},
	}
	clipboards = []tool{
		{bin: "pbcopy"},
		{bin: "wl-copy"},
		{bin: "xclip", args: []string{"-selection", "clipboard"}},
		{bin: "xsel", args: []string{"--clipboard", "--input"}},
	}
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Start(name string, args ...string) error
	RunPiped(name string, args []string, stdin io.Reader) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Start launches the command without waiting for it; viewers may stay
// open indefinitely.
func (o *osExecutor) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}

func (o *osExecutor) RunPiped(name string, args []string, stdin io.Reader) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	return cmd.Run()
}

// Desktop runs row actions through the first available platform tools.
type Desktop struct {
	exec executor
}

// NewDesktop returns a Desktop backed by os/exec.
func NewDesktop() *Desktop {
	return &Desktop{exec: &osExecutor{}}
}

// OpenPDF opens pdfLink with the system URL handler.
func (d *Desktop) OpenPDF(pdfLink string) error {
	if strings.TrimSpace(pdfLink) == "" {
		return ErrNoPDF
	}
	t, err := d.find(openers)
	if err != nil {
		return fmt.Errorf("opening PDF: %w", err)
	}
	args := append(append([]string{}, t.args...), pdfLink)
	if err := d.exec.Start(t.bin, args...); err != nil {
		return fmt.Errorf("running %s: %w", t.bin, err)
	}
	return nil
}

// CopyAuthors places the comma-joined author list on the clipboard and
// returns the copied text.
func (d *Desktop) CopyAuthors(authors []string) (string, error) {
	text := strings.Join(authors, ", ")
	t, err := d.find(clipboards)
	if err != nil {
		return "", fmt.Errorf("copying authors: %w", err)
	}
	if err := d.exec.RunPiped(t.bin, t.args, strings.NewReader(text)); err != nil {
		return "", fmt.Errorf("running %s: %w", t.bin, err)
	}
	return text, nil
}

func (d *Desktop) find(candidates []tool) (tool, error) {
	names := make([]string, 0, len(candidates))
	for _, t := range candidates {
		if _, err := d.exec.LookPath(t.bin); err == nil {
			return t, nil
		}
		names = append(names, t.bin)
	}
	return tool{}, fmt.Errorf("none of %s found on PATH", strings.Join(names, ", "))
}
