// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package category narrows result lists to a coarse arXiv subject facet.
package category

import (
	"fmt"
	"strings"

	"github.com/pdiddy/arxiv-search/pkg/types"
)

// Facet is a coarse subject filter selected by the user.
type Facet string

const (
	// All passes every paper through.
	All Facet = "all"
	// Physics matches any physics archive (see physicsArchives).
	Physics Facet = "physics"

	ComputerScience Facet = "cs"
	Mathematics     Facet = "math"
	Statistics      Facet = "stat"
	QuantBiology    Facet = "q-bio"
	QuantFinance    Facet = "q-fin"
	EESS            Facet = "eess"
	Economics       Facet = "econ"
)

// physicsArchives are the arXiv archives grouped under Physics.
var physicsArchives = map[string]bool{
	"astro-ph": true,
	"cond-mat": true,
	"gr-qc":    true,
	"hep-ex":   true,
	"hep-lat":  true,
	"hep-ph":   true,
	"hep-th":   true,
	"math-ph":  true,
	"nlin":     true,
	"nucl-ex":  true,
	"nucl-th":  true,
	"physics":  true,
	"quant-ph": true,
}

// Option describes a facet for selection widgets.
type Option struct {
	Facet Facet  `json:"facet"`
	Label string `json:"label"`
	Color string `json:"color"`
}

var options = []Option{
	{All, "All Categories", ""},
	{ComputerScience, "Computer Science", "blue"},
	{Mathematics, "Mathematics", "green"},
	{Physics, "Physics", "red"},
	{Statistics, "Statistics", "yellow"},
	{QuantBiology, "Quantitative Biology", "magenta"},
	{QuantFinance, "Quantitative Finance", "orange"},
	{EESS, "Electrical Engineering and Systems Science", "cyan"},
	{Economics, "Economics", "purple"},
}

// Facets returns the selectable facets in display order, All first.
func Facets() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

// ParseFacet validates s as a facet name. An empty string selects All.
func ParseFacet(s string) (Facet, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return All, nil
	}
	for _, o := range options {
		if string(o.Facet) == s {
			return o.Facet, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Next returns the facet after f in display order, wrapping around.
func Next(f Facet) Facet {
	for i, o := range options {
		if o.Facet == f {
			return options[(i+1)%len(options)].Facet
		}
	}
	return All
}

// Label returns the display label for f.
func Label(f Facet) string {
	for _, o := range options {
		if o.Facet == f {
			return o.Label
		}
	}
	return string(f)
}

// Match reports whether a paper's comma-joined category field belongs to
// facet f. A tag belongs to a facet when it equals the facet or starts
// with the facet followed by ".", so "cs" matches "cs.CL" but not
// "physics.comp-ph".
func Match(categoryField string, f Facet) bool {
	if f == All || f == "" {
		return true
	}
	for _, tag := range strings.Split(categoryField, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if archiveFacet(archive(tag)) == f {
			return true
		}
	}
	return false
}

// Filter returns the papers whose category matches f, preserving order.
// Papers are copied, never modified.
func Filter(papers []types.Paper, f Facet) []types.Paper {
	out := make([]types.Paper, 0, len(papers))
	for _, p := range papers {
		if Match(p.Category, f) {
			out = append(out, p)
		}
	}
	return out
}

// ColorTag returns the colour of the facet owning the first tag in
// categoryField, or "" when the tag belongs to no known facet.
func ColorTag(categoryField string) string {
	first, _, _ := strings.Cut(categoryField, ",")
	f := archiveFacet(archive(strings.TrimSpace(first)))
	for _, o := range options {
		if o.Facet == f {
			return o.Color
		}
	}
	return ""
}

// archive strips the subject class: "cs.CL" → "cs", "hep-th" → "hep-th".
func archive(tag string) string {
	a, _, _ := strings.Cut(tag, ".")
	return a
}

func archiveFacet(a string) Facet {
	if a == "" {
		return ""
	}
	if physicsArchives[a] {
		return Physics
	}
	return Facet(a)
}
