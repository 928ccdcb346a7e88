// Package ranker provides retrieval adapters.
// Clean Architecture: Adapter implementing ports.Ranker.
package ranker

import (
	"sort"
	"strings"

	"pdfrag/internal/domain/entities"
)

// Lexical ranks chunks by the number of distinct words they share with the
// question. It scans every chunk on every call - no index is built. Fine at
// small scale; anything bigger should swap in an indexed ranker behind
// ports.Ranker.
type Lexical struct{}

// NewLexical creates a lexical overlap ranker.
func NewLexical() *Lexical {
	return &Lexical{}
}

// Rank returns the topK highest-scoring chunks, best first. Chunks sharing
// no words with the question are excluded regardless of topK. Ties keep the
// order chunks appear in the store, which makes repeated queries return
// identical results.
func (l *Lexical) Rank(question string, chunks []entities.Chunk, topK int) []entities.Chunk {
	if topK <= 0 {
		return nil
	}

	questionWords := tokenize(question)
	if len(questionWords) == 0 {
		return nil
	}

	type scored struct {
		chunk entities.Chunk
		score int
	}

	var results []scored
	for _, chunk := range chunks {
		score := overlap(questionWords, tokenize(chunk.Text))
		if score > 0 {
			results = append(results, scored{chunk: chunk, score: score})
		}
	}

	// Stable so equal scores keep insertion order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if len(results) > topK {
		results = results[:topK]
	}

	top := make([]entities.Chunk, len(results))
	for i, r := range results {
		top[i] = r.chunk
	}
	return top
}

// tokenize lower-cases and splits on whitespace, collapsing duplicates.
// Punctuation stays attached to its word: "dogs." and "dogs" are distinct
// tokens.
func tokenize(s string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// overlap counts words present in both sets.
func overlap(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for w := range a {
		if _, ok := b[w]; ok {
			n++
		}
	}
	return n
}
