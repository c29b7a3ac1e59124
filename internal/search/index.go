// Package search holds a forward-tokenized keyword index over the case
// catalog: every prefix of every token maps to the slugs whose text contains
// a token with that prefix, enabling prefix-style lookups. The index is
// built once before the server starts serving and only changes through an
// explicit Rebuild, so staleness is a caller decision.
package search

import (
	"strings"
	"sync"
	"unicode"
)

// Document is one indexable record: a slug and the text blob derived from it.
type Document struct {
	Slug string
	Text string
}

type Index struct {
	mu       sync.RWMutex
	prefixes map[string][]string
	order    []string
}

func New() *Index {
	return &Index{prefixes: make(map[string][]string)}
}

// Build replaces the index contents wholesale. Slugs are recorded in
// document order; that order is what queries return.
func (idx *Index) Build(docs []Document) {
	prefixes := make(map[string][]string)
	seen := make(map[string]map[string]bool)
	order := make([]string, 0, len(docs))

	for _, doc := range docs {
		order = append(order, doc.Slug)
		for _, token := range tokenize(doc.Text) {
			runes := []rune(token)
			for i := 1; i <= len(runes); i++ {
				prefix := string(runes[:i])
				if seen[prefix] == nil {
					seen[prefix] = make(map[string]bool)
				}
				if seen[prefix][doc.Slug] {
					continue
				}
				seen[prefix][doc.Slug] = true
				prefixes[prefix] = append(prefixes[prefix], doc.Slug)
			}
		}
	}

	idx.mu.Lock()
	idx.prefixes = prefixes
	idx.order = order
	idx.mu.Unlock()
}

// Search returns matching slugs in index-internal order. A blank query
// returns every indexed slug. A multi-token query requires every token to
// match as a prefix.
func (idx *Index) Search(query string) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	tokens := tokenize(query)
	if len(tokens) == 0 {
		out := make([]string, len(idx.order))
		copy(out, idx.order)
		return out
	}

	result := idx.prefixes[tokens[0]]
	for _, token := range tokens[1:] {
		result = intersect(result, idx.prefixes[token])
		if len(result) == 0 {
			return nil
		}
	}

	out := make([]string, len(result))
	copy(out, result)
	return out
}

// Len reports the number of indexed documents.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.order)
}

func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	inB := make(map[string]bool, len(b))
	for _, s := range b {
		inB[s] = true
	}
	var out []string
	for _, s := range a {
		if inB[s] {
			out = append(out, s)
		}
	}
	return out
}

// tokenize lowercases and splits on anything that is not a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
