// Package levenshtein implements the similarity provider port with
// normalized edit distance. It is the default, dependency-light stand-in
// for an embedding service: good enough to surface near-misses like
// 東京都/東京 without any model downloads.
package levenshtein

import (
	"github.com/agnivade/levenshtein"
)

// Provider selects the candidate closest to a query word, by
// 1 - distance/maxLen over runes. Candidates below MinScore are
// rejected; the first-listed candidate wins ties, so results are
// deterministic for a fixed candidate order.
type Provider struct {
	minScore float64
}

// New creates a provider with the given acceptance threshold in [0,1].
func New(minScore float64) *Provider {
	return &Provider{minScore: minScore}
}

// MostSimilar returns the best-scoring candidate at or above the
// threshold, or ok=false when none qualifies.
func (p *Provider) MostSimilar(word string, candidates []string) (string, float64, bool) {
	best := ""
	bestScore := -1.0
	for _, c := range candidates {
		if s := Similarity(word, c); s > bestScore {
			best = c
			bestScore = s
		}
	}
	if bestScore < p.minScore || best == "" {
		return "", 0, false
	}
	return best, bestScore, true
}

// Similarity returns the normalized similarity of two strings in [0,1]:
// 1 for equal strings, 0 for a full-length rewrite. Two empty strings
// count as identical.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}
