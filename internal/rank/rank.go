// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank orders papers by lexical similarity between their titles
// and the active search text.
package rank

import (
	"sort"
	"strings"
	"unicode"

	"github.com/pdiddy/arxiv-search/pkg/types"
)

// Similarity returns the Dice coefficient of the character bigrams of a
// and b: 2·|shared| / (|bigrams(a)| + |bigrams(b)|). Both strings are
// lower-cased and stripped of whitespace first, and bigrams are counted
// as a multiset. Identical normalized strings score 1; otherwise a string
// shorter than two runes scores 0.
func Similarity(a, b string) float64 {
	na, nb := normalize(a), normalize(b)
	if na == nb {
		return 1
	}

	ra, rb := []rune(na), []rune(nb)
	if len(ra) < 2 || len(rb) < 2 {
		return 0
	}

	counts := make(map[[2]rune]int, len(ra)-1)
	for i := 0; i < len(ra)-1; i++ {
		counts[[2]rune{ra[i], ra[i+1]}]++
	}

	shared := 0
	for i := 0; i < len(rb)-1; i++ {
		bg := [2]rune{rb[i], rb[i+1]}
		if counts[bg] > 0 {
			counts[bg]--
			shared++
		}
	}

	return 2 * float64(shared) / float64(len(ra)-1+len(rb)-1)
}

func normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Rank returns a new slice holding papers in descending order of title
// similarity to query. Papers with equal scores keep their input order.
// The input slice is not modified.
func Rank(papers []types.Paper, query string) []types.Paper {
	type scored struct {
		paper types.Paper
		score float64
	}

	items := make([]scored, len(papers))
	for i, p := range papers {
		items[i] = scored{paper: p, score: Similarity(p.Title, query)}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})

	ranked := make([]types.Paper, len(items))
	for i, it := range items {
		ranked[i] = it.paper
	}
	return ranked
}
