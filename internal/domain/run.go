package domain

import "time"

// MatchConfig is the configuration snapshot stored with each run, so
// that a persisted run can be interpreted without knowing what the
// application defaults were at the time.
type MatchConfig struct {
	MaxMoraLength     int     `json:"max_mora_length"`
	SimilarityEnabled bool    `json:"similarity_enabled"`
	MinSimilarity     float64 `json:"min_similarity"`
}

// MatchRun is the aggregate root for one reconstruction session: one
// input text matched against one corpus. Result order equals input
// token order; the slice position is authoritative and is never stored
// on the result itself. A run is persisted whole — a run without its
// results is not a valid stored state.
type MatchRun struct {
	ID        string
	CorpusID  string
	InputText string
	CreatedAt time.Time
	Config    MatchConfig
	Results   []MatchResult
}

// NewMatchRun creates an empty run with a fresh id.
func NewMatchRun(corpusID, inputText string, cfg MatchConfig) *MatchRun {
	return &MatchRun{
		ID:        NewRunID(),
		CorpusID:  corpusID,
		InputText: inputText,
		CreatedAt: time.Now().UTC(),
		Config:    cfg,
	}
}

// Append adds a result in tokenization order.
func (r *MatchRun) Append(res MatchResult) {
	r.Results = append(r.Results, res)
}
