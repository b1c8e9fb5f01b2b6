// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed converts arXiv Atom documents into normalized Papers.
//
// All defensive access to the untrusted feed lives here: each field of an
// entry is extracted independently and falls back to its zero value, so a
// missing author list never costs a paper its title. Only a document that
// cannot be parsed at all is an error.
package feed

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/gofeed/atom"

	"github.com/pdiddy/arxiv-search/pkg/types"
)

// ErrMalformedFeed is wrapped by every error Parse returns.
var ErrMalformedFeed = errors.New("malformed feed document")

const (
	pdfRel  = "related"
	pdfType = "application/pdf"
)

// Parse reads an Atom document and returns one Paper per entry, in feed
// order. A feed without entries yields an empty, non-nil slice. The
// document must be well-formed XML.
func Parse(r io.Reader) ([]types.Paper, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
	}
	if err := checkWellFormed(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
	}

	fp := &atom.Parser{}
	doc, err := fp.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
	}

	papers := make([]types.Paper, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		if e == nil {
			continue
		}
		papers = append(papers, normalize(e))
	}
	return papers, nil
}

// checkWellFormed walks every token with a strict decoder. The atom
// parser is lenient and would return partial results for broken markup.
func checkWellFormed(data []byte) error {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.Strict = true
	root := false
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if _, ok := tok.(xml.StartElement); ok {
			root = true
		}
	}
	if !root {
		return errors.New("no root element")
	}
	return nil
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(data []byte) ([]types.Paper, error) {
	return Parse(bytes.NewReader(data))
}

func normalize(e *atom.Entry) types.Paper {
	return types.Paper{
		ID:        strings.TrimSpace(e.ID),
		Published: strings.TrimSpace(e.Published),
		Title:     collapseSpace(e.Title),
		Authors:   authors(e.Authors),
		Category:  categories(e.Categories),
		PDFLink:   pdfLink(e.Links),
	}
}

func authors(people []*atom.Person) []string {
	names := make([]string, 0, len(people))
	for _, p := range people {
		if p == nil {
			continue
		}
		if name := collapseSpace(p.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func categories(cats []*atom.Category) string {
	terms := make([]string, 0, len(cats))
	for _, c := range cats {
		if c == nil {
			continue
		}
		if term := strings.TrimSpace(c.Term); term != "" {
			terms = append(terms, term)
		}
	}
	return strings.Join(terms, ", ")
}

// pdfLink returns the href of the first related application/pdf link.
func pdfLink(links []*atom.Link) string {
	for _, l := range links {
		if l == nil {
			continue
		}
		if l.Rel == pdfRel && l.Type == pdfType {
			return strings.TrimSpace(l.Href)
		}
	}
	return ""
}

// collapseSpace trims s and folds internal whitespace runs (arXiv wraps
// long titles across lines) into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
