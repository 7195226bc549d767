// Package grounding decides whether a generated answer is supported by
// the retrieved context using a lexical overlap heuristic
package grounding

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultThreshold is the minimum fraction of answer content tokens
// that must appear in a single document for the answer to count as
// grounded in it
const DefaultThreshold = 0.3

// stopwords are dropped before overlap is measured; yes/no glue words
// otherwise inflate scores between unrelated texts
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "you": {}, "your": {},
	"can": {}, "with": {}, "this": {}, "that": {}, "from": {}, "have": {},
	"will": {}, "not": {}, "all": {}, "under": {}, "per": {},
}

var foldChain = transform.Chain(
	norm.NFKC,
	cases.Fold(),
	runes.Remove(runes.In(unicode.Mn)),
)

// Tokens splits s into normalized content tokens
func Tokens(s string) []string {
	folded, _, _ := transform.String(foldChain, s)
	raw := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if len(t) < 3 {
			continue
		}
		if _, skip := stopwords[t]; skip {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Overlap returns the fraction of answer content tokens found in doc.
// An answer with no content tokens overlaps nothing
func Overlap(answer, doc string) float64 {
	at := Tokens(answer)
	if len(at) == 0 {
		return 0
	}
	docSet := make(map[string]struct{}, 64)
	for _, t := range Tokens(doc) {
		docSet[t] = struct{}{}
	}
	hits := 0
	for _, t := range at {
		if _, ok := docSet[t]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(at))
}

// Grounded reports whether answer overlaps at least one doc at or above
// threshold. threshold <= 0 falls back to DefaultThreshold
func Grounded(answer string, docs []string, threshold float64) bool {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	for _, d := range docs {
		if Overlap(answer, d) >= threshold {
			return true
		}
	}
	return false
}
