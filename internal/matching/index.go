// Package matching implements the token reconstruction core: the corpus
// index, the priority-cascade matching engine with mora-level dynamic
// programming, and the aggregator that folds per-token results into the
// reconstructed text.
package matching

import (
	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

// Index holds the lookup structures built from one tokenized corpus:
// tokens by surface form, by normalized reading, and by individual mora.
// Every lookup preserves corpus order (line, then token position), so
// "first result" always means "earliest occurrence in the lyrics".
//
// An Index is read-only after BuildIndex returns and may be shared
// across concurrent engines without locking.
type Index struct {
	tokens    []*domain.LyricToken
	byID      map[string]*domain.LyricToken
	bySurface map[string][]*domain.LyricToken
	byReading map[string][]*domain.LyricToken
	byMora    map[domain.Mora][]*domain.LyricToken
}

// BuildIndex constructs an Index from tokens in corpus order.
func BuildIndex(tokens []*domain.LyricToken) *Index {
	idx := &Index{
		tokens:    tokens,
		byID:      make(map[string]*domain.LyricToken, len(tokens)),
		bySurface: make(map[string][]*domain.LyricToken),
		byReading: make(map[string][]*domain.LyricToken),
		byMora:    make(map[domain.Mora][]*domain.LyricToken),
	}

	for _, tok := range tokens {
		idx.byID[tok.ID()] = tok
		idx.bySurface[tok.Surface] = append(idx.bySurface[tok.Surface], tok)

		reading := tok.Reading.Normalized()
		idx.byReading[reading] = append(idx.byReading[reading], tok)

		// A token with the same mora twice still appears once per key.
		for _, m := range tok.Moras() {
			list := idx.byMora[m]
			if len(list) > 0 && list[len(list)-1] == tok {
				continue
			}
			idx.byMora[m] = append(idx.byMora[m], tok)
		}
	}

	return idx
}

// Len returns the number of indexed tokens.
func (idx *Index) Len() int { return len(idx.tokens) }

// Tokens returns the indexed tokens in corpus order. Callers must not
// mutate the returned slice.
func (idx *Index) Tokens() []*domain.LyricToken { return idx.tokens }

// ByID resolves a token by its deterministic identity.
func (idx *Index) ByID(id string) (*domain.LyricToken, bool) {
	tok, ok := idx.byID[id]
	return tok, ok
}

// FindBySurface returns tokens whose surface form equals surface.
func (idx *Index) FindBySurface(surface string) []*domain.LyricToken {
	return idx.bySurface[surface]
}

// FindByReading returns tokens whose normalized reading equals reading.
// The query must already be normalized katakana.
func (idx *Index) FindByReading(reading string) []*domain.LyricToken {
	return idx.byReading[reading]
}

// FindByMora returns tokens whose mora sequence contains m.
func (idx *Index) FindByMora(m domain.Mora) []*domain.LyricToken {
	return idx.byMora[m]
}

// HasMora reports whether any indexed token contains m. The engine uses
// it to fail fast before running the combination search.
func (idx *Index) HasMora(m domain.Mora) bool {
	return len(idx.byMora[m]) > 0
}

// Surfaces returns the distinct surface vocabulary in first-occurrence
// order. Similarity providers use it as the candidate set.
func (idx *Index) Surfaces() []string {
	seen := make(map[string]bool, len(idx.bySurface))
	out := make([]string, 0, len(idx.bySurface))
	for _, tok := range idx.tokens {
		if !seen[tok.Surface] {
			seen[tok.Surface] = true
			out = append(out, tok.Surface)
		}
	}
	return out
}

// Readings returns the distinct normalized reading vocabulary in
// first-occurrence order.
func (idx *Index) Readings() []string {
	seen := make(map[string]bool, len(idx.byReading))
	out := make([]string, 0, len(idx.byReading))
	for _, tok := range idx.tokens {
		r := tok.Reading.Normalized()
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}
