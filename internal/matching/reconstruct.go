package matching

import (
	"strings"

	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

// TokenLookup resolves a corpus token by its deterministic id.
// (*Index).ByID satisfies it; the query service builds one from tokens
// loaded out of storage.
type TokenLookup func(id string) (*domain.LyricToken, bool)

// Reconstruction is the assembled output of one run: the concatenated
// surface and reading texts plus result counts per match type. Stats
// carries a bucket for every defined match type, zero when unused.
type Reconstruction struct {
	Surface string
	Reading string
	Stats   map[domain.MatchType]int
}

// Reconstruct folds ordered match results into the final texts.
//
// Whole-token matches emit the matched tokens' surface and normalized
// reading. Mora combinations emit the raw concatenated provenance moras
// for both fields: the surface of a recombined word is phonetic
// material, not any single source token's spelling. No-match results
// emit nothing but still count.
func Reconstruct(results []domain.MatchResult, lookup TokenLookup) Reconstruction {
	stats := make(map[domain.MatchType]int, len(domain.AllMatchTypes()))
	for _, mt := range domain.AllMatchTypes() {
		stats[mt] = 0
	}

	var surface, reading strings.Builder
	for _, res := range results {
		stats[res.Type]++

		switch res.Type {
		case domain.MatchExactSurface, domain.MatchExactReading,
			domain.MatchSimilarSurface, domain.MatchSimilarReading:
			for _, id := range res.MatchedTokenIDs {
				tok, ok := lookup(id)
				if !ok {
					continue
				}
				surface.WriteString(tok.Surface)
				reading.WriteString(tok.Reading.Normalized())
			}

		case domain.MatchMoraCombination, domain.MatchSimilarMora:
			moras := res.MoraReading()
			surface.WriteString(moras)
			reading.WriteString(moras)

		case domain.MatchNone:
			// Emits nothing.
		}
	}

	return Reconstruction{
		Surface: surface.String(),
		Reading: reading.String(),
		Stats:   stats,
	}
}
