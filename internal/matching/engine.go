package matching

import (
	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

// TokenIndex is the read-only corpus view the engine matches against.
// *Index satisfies it; tests substitute instrumented implementations.
type TokenIndex interface {
	FindBySurface(surface string) []*domain.LyricToken
	FindByReading(reading string) []*domain.LyricToken
	FindByMora(m domain.Mora) []*domain.LyricToken
	HasMora(m domain.Mora) bool
	Surfaces() []string
	Readings() []string
}

// SimilarityProvider is the optional fallback for content words that the
// exact cascade could not match. Implementations return the candidate
// closest to word together with its score, or ok=false when nothing
// clears their threshold.
type SimilarityProvider interface {
	MostSimilar(word string, candidates []string) (similar string, score float64, ok bool)
}

// Content-word POS classes eligible for the similarity fallback
// (kagome IPA primary POS labels).
var contentPOS = map[string]bool{
	"名詞":  true,
	"動詞":  true,
	"形容詞": true,
	"副詞":  true,
}

// Engine matches input tokens against a corpus index using a strict
// priority cascade: exact surface, exact reading, mora combination,
// then the optional similarity fallback. It holds no cross-token state
// besides the shared read-only index, so one engine may serve
// concurrent callers.
type Engine struct {
	idx        TokenIndex
	maxMora    int
	similarity SimilarityProvider // nil disables the fallback
}

// NewEngine creates an engine over idx. maxMoraLength caps the mora
// combination search; similarity may be nil.
func NewEngine(idx TokenIndex, maxMoraLength int, similarity SimilarityProvider) *Engine {
	return &Engine{idx: idx, maxMora: maxMoraLength, similarity: similarity}
}

// MatchToken runs the cascade for a single input token and always
// returns a result; no_match is a valid terminal, not an error.
func (e *Engine) MatchToken(surface, reading, pos string) domain.MatchResult {
	normalized := domain.NormalizeReading(reading)

	if res, ok := e.cascade(surface, normalized); ok {
		res.InputSurface = surface
		res.InputReading = normalized
		return res
	}

	if e.similarity != nil && contentPOS[pos] {
		if res, ok := e.similarFallback(surface, normalized); ok {
			return res
		}
	}

	return domain.NoMatch(surface, normalized)
}

// cascade runs steps 1-3. The returned result carries Type,
// MatchedTokenIDs and MoraDetails; the caller fills the input fields.
func (e *Engine) cascade(surface, normalized string) (domain.MatchResult, bool) {
	// 1. Exact surface: earliest corpus occurrence wins.
	if tokens := e.idx.FindBySurface(surface); len(tokens) > 0 {
		return domain.MatchResult{
			Type:            domain.MatchExactSurface,
			MatchedTokenIDs: []string{tokens[0].ID()},
		}, true
	}

	// 2. Exact normalized reading.
	if tokens := e.idx.FindByReading(normalized); len(tokens) > 0 {
		return domain.MatchResult{
			Type:            domain.MatchExactReading,
			MatchedTokenIDs: []string{tokens[0].ID()},
		}, true
	}

	// 3. Mora combination.
	if details, ok := e.moraCombination(normalized); ok {
		return domain.MatchResult{
			Type:        domain.MatchMoraCombination,
			MoraDetails: details,
		}, true
	}

	return domain.MatchResult{}, false
}

// moraCombination covers the reading's mora sequence end to end with
// corpus material, via dynamic programming over mora positions 0..n.
//
// Two transition kinds, tried single-mora first, then spans of
// increasing length: consume one position with any token containing
// that mora, or consume a contiguous span (2..maxMora positions) with a
// single token whose entire reading equals the span. The first fill of
// a DP cell wins and is never overwritten, which biases toward more,
// shorter matches encountered early in the scan.
func (e *Engine) moraCombination(normalized string) ([]domain.MoraDetail, bool) {
	target := domain.SplitMoras(normalized)
	n := len(target)
	if n == 0 {
		return nil, false
	}

	// Cap bounds the worst-case DP cost; over-long readings are
	// rejected before any index lookup happens.
	if n > e.maxMora {
		return nil, false
	}

	// Fast fail: a single absent mora makes full coverage impossible.
	for _, m := range target {
		if !e.idx.HasMora(m) {
			return nil, false
		}
	}

	type cell struct {
		ok      bool
		details []domain.MoraDetail
	}
	dp := make([]cell, n+1)
	dp[0].ok = true

	for i := 0; i < n; i++ {
		if !dp[i].ok {
			continue
		}

		// Single-mora step.
		m := target[i]
		if tokens := e.idx.FindByMora(m); len(tokens) > 0 && !dp[i+1].ok {
			tok := tokens[0]
			dp[i+1] = cell{
				ok: true,
				details: appendDetail(dp[i].details, domain.MoraDetail{
					Mora:          m,
					SourceTokenID: tok.ID(),
					MoraIndex:     moraIndexIn(tok, m),
				}),
			}
		}

		// Span step: one token's whole reading covers target[i:j].
		for j := i + 2; j <= min(i+e.maxMora, n); j++ {
			if dp[j].ok {
				continue
			}
			span := target[i:j]
			tokens := e.idx.FindByReading(domain.JoinMoras(span))
			if len(tokens) == 0 {
				continue
			}
			tok := tokens[0]
			details := dp[i].details
			for offset, sm := range span {
				details = appendDetail(details, domain.MoraDetail{
					Mora:          sm,
					SourceTokenID: tok.ID(),
					MoraIndex:     offset,
				})
			}
			dp[j] = cell{ok: true, details: details}
		}
	}

	if !dp[n].ok {
		return nil, false
	}
	return dp[n].details, true
}

// similarFallback asks the provider for the nearest corpus word and
// re-enters the cascade with it. Surface vocabulary is tried first,
// reading vocabulary when the surface search yields nothing.
func (e *Engine) similarFallback(surface, normalized string) (domain.MatchResult, bool) {
	if word, score, ok := e.similarity.MostSimilar(surface, e.idx.Surfaces()); ok {
		if res, ok := e.reenter(word, e.readingOfSurface(word), surface, normalized, score, word); ok {
			return res, true
		}
	}

	if word, score, ok := e.similarity.MostSimilar(normalized, e.idx.Readings()); ok {
		if res, ok := e.reenter("", word, surface, normalized, score, word); ok {
			return res, true
		}
	}

	return domain.MatchResult{}, false
}

// reenter runs the cascade with a similar word and remaps the outcome
// to its similar_* variant, keeping the original input fields.
func (e *Engine) reenter(simSurface, simReading, inputSurface, inputReading string, score float64, word string) (domain.MatchResult, bool) {
	res, ok := e.cascade(simSurface, simReading)
	if !ok {
		return domain.MatchResult{}, false
	}

	switch res.Type {
	case domain.MatchExactSurface:
		res.Type = domain.MatchSimilarSurface
	case domain.MatchExactReading:
		res.Type = domain.MatchSimilarReading
	case domain.MatchMoraCombination:
		res.Type = domain.MatchSimilarMora
	}

	res.InputSurface = inputSurface
	res.InputReading = inputReading
	res.SimilarWord = word
	res.SimilarityScore = score
	return res, true
}

// readingOfSurface resolves the normalized reading of a corpus surface
// form, falling back to the surface itself when it is not indexed.
func (e *Engine) readingOfSurface(surface string) string {
	if tokens := e.idx.FindBySurface(surface); len(tokens) > 0 {
		return tokens[0].Reading.Normalized()
	}
	return domain.NormalizeReading(surface)
}

// moraIndexIn returns the first position of m in the token's mora
// sequence. The caller only passes moras the token is indexed under.
func moraIndexIn(tok *domain.LyricToken, m domain.Mora) int {
	for i, tm := range tok.Moras() {
		if tm == m {
			return i
		}
	}
	return 0
}

// appendDetail copies on append so DP cells never share backing arrays.
func appendDetail(details []domain.MoraDetail, d domain.MoraDetail) []domain.MoraDetail {
	out := make([]domain.MoraDetail, len(details), len(details)+1)
	copy(out, details)
	return append(out, d)
}
