package query

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
	"github.com/heartmarshall/lyrictalk-backend/internal/matching"
)

// TokenRef is a resolved reference to a corpus token.
type TokenRef struct {
	ID      string
	Surface string
	Reading string
}

// MoraTraceItem is one mora of a recombination with its resolved
// provenance.
type MoraTraceItem struct {
	Mora          string
	SourceTokenID string
	SourceSurface string
	MoraIndex     int
}

// StepReport is one input token's match, with token ids resolved to
// surfaces. For mora recombinations MatchedTokens lists the distinct
// source tokens in first-use order.
type StepReport struct {
	Index           int
	InputSurface    string
	InputReading    string
	Type            domain.MatchType
	MatchedTokens   []TokenRef
	MoraTrace       []MoraTraceItem
	SimilarWord     string
	SimilarityScore float64
}

// RunReport is the full view of a stored run: metadata, per-step
// detail and the reconstruction summary.
type RunReport struct {
	RunID     string
	CorpusID  string
	InputText string
	CreatedAt time.Time
	Config    domain.MatchConfig
	Steps     []StepReport
	Surface   string
	Reading   string
	Stats     map[domain.MatchType]int
}

// GetRun loads a run and resolves every stored token id against the
// corpus it was matched on.
func (s *Service) GetRun(ctx context.Context, runID string) (*RunReport, error) {
	if runID == "" {
		return nil, domain.NewValidationError("run_id", "required")
	}

	run, err := s.runs.GetByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", runID, err)
	}

	corpusTokens, err := s.tokens.ListByCorpus(ctx, run.CorpusID)
	if err != nil {
		return nil, fmt.Errorf("load corpus tokens: %w", err)
	}
	byID := make(map[string]*domain.LyricToken, len(corpusTokens))
	for _, tok := range corpusTokens {
		byID[tok.ID()] = tok
	}
	lookup := func(id string) (*domain.LyricToken, bool) {
		tok, ok := byID[id]
		return tok, ok
	}

	recon := matching.Reconstruct(run.Results, lookup)

	report := &RunReport{
		RunID:     run.ID,
		CorpusID:  run.CorpusID,
		InputText: run.InputText,
		CreatedAt: run.CreatedAt,
		Config:    run.Config,
		Steps:     make([]StepReport, 0, len(run.Results)),
		Surface:   recon.Surface,
		Reading:   recon.Reading,
		Stats:     recon.Stats,
	}
	for i, res := range run.Results {
		report.Steps = append(report.Steps, buildStep(i, res, lookup))
	}

	return report, nil
}

func buildStep(index int, res domain.MatchResult, lookup matching.TokenLookup) StepReport {
	step := StepReport{
		Index:           index,
		InputSurface:    res.InputSurface,
		InputReading:    res.InputReading,
		Type:            res.Type,
		SimilarWord:     res.SimilarWord,
		SimilarityScore: res.SimilarityScore,
	}

	for _, id := range res.MatchedTokenIDs {
		step.MatchedTokens = append(step.MatchedTokens, resolveRef(id, lookup))
	}

	// Mora provenance: the trace keeps every mora, MatchedTokens the
	// distinct source tokens in first-use order.
	seen := make(map[string]bool, len(res.MoraDetails))
	for _, d := range res.MoraDetails {
		item := MoraTraceItem{
			Mora:          string(d.Mora),
			SourceTokenID: d.SourceTokenID,
			MoraIndex:     d.MoraIndex,
		}
		if tok, ok := lookup(d.SourceTokenID); ok {
			item.SourceSurface = tok.Surface
		}
		step.MoraTrace = append(step.MoraTrace, item)

		if !seen[d.SourceTokenID] {
			seen[d.SourceTokenID] = true
			step.MatchedTokens = append(step.MatchedTokens, resolveRef(d.SourceTokenID, lookup))
		}
	}

	return step
}

func resolveRef(id string, lookup matching.TokenLookup) TokenRef {
	ref := TokenRef{ID: id}
	if tok, ok := lookup(id); ok {
		ref.Surface = tok.Surface
		ref.Reading = tok.Reading.Normalized()
	}
	return ref
}
