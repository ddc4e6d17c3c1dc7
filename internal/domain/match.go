package domain

// MatchType classifies how an input token was matched against the corpus.
// The set is closed; persistence stores the string value.
type MatchType string

const (
	MatchExactSurface    MatchType = "exact_surface"    // surface form found verbatim
	MatchExactReading    MatchType = "exact_reading"    // normalized reading found verbatim
	MatchMoraCombination MatchType = "mora_combination" // reading covered mora by mora
	MatchSimilarSurface  MatchType = "similar_surface"  // similar word resolved by surface
	MatchSimilarReading  MatchType = "similar_reading"  // similar word resolved by reading
	MatchSimilarMora     MatchType = "similar_mora"     // similar word resolved by moras
	MatchNone            MatchType = "no_match"
)

// AllMatchTypes returns every defined match type in display order.
// Aggregation uses it to report zero counts for unused buckets.
func AllMatchTypes() []MatchType {
	return []MatchType{
		MatchExactSurface,
		MatchExactReading,
		MatchMoraCombination,
		MatchSimilarSurface,
		MatchSimilarReading,
		MatchSimilarMora,
		MatchNone,
	}
}

// IsValid reports whether t is one of the defined match types.
func (t MatchType) IsValid() bool {
	switch t {
	case MatchExactSurface, MatchExactReading, MatchMoraCombination,
		MatchSimilarSurface, MatchSimilarReading, MatchSimilarMora, MatchNone:
		return true
	}
	return false
}

// MoraDetail records the provenance of a single mora in a combination
// match: which corpus token supplied it and at which position inside that
// token's mora sequence.
type MoraDetail struct {
	Mora          Mora
	SourceTokenID string
	MoraIndex     int
}

// MatchResult is the outcome for one input token. Results are immutable
// once constructed; aggregation and persistence rely on that.
//
// MatchedTokenIDs is populated for whole-token matches (exact and
// similar surface/reading); MoraDetails only for mora combinations.
// SimilarWord and SimilarityScore are set only for the similar_* types.
type MatchResult struct {
	InputSurface    string
	InputReading    string // normalized katakana
	Type            MatchType
	MatchedTokenIDs []string
	MoraDetails     []MoraDetail
	SimilarWord     string
	SimilarityScore float64
}

// NoMatch builds the terminal result for a token nothing in the corpus
// could cover. It is a value, not an error.
func NoMatch(surface, normalizedReading string) MatchResult {
	return MatchResult{
		InputSurface: surface,
		InputReading: normalizedReading,
		Type:         MatchNone,
	}
}

// MoraReading concatenates the provenance moras. For a well-formed
// mora_combination result it reproduces InputReading exactly.
func (r MatchResult) MoraReading() string {
	moras := make([]Mora, len(r.MoraDetails))
	for i, d := range r.MoraDetails {
		moras[i] = d.Mora
	}
	return JoinMoras(moras)
}
