package match

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
	"github.com/heartmarshall/lyrictalk-backend/internal/matching"
)

// RunInput holds the parameters for one matching session.
type RunInput struct {
	CorpusID string
	Text     string
}

// Validate checks all fields.
func (i RunInput) Validate() error {
	if i.CorpusID == "" {
		return domain.NewValidationError("corpus_id", "required")
	}
	return nil
}

// RunResult is the outcome of a matching session.
type RunResult struct {
	RunID       string
	CorpusID    string
	ResultCount int
	Stats       map[domain.MatchType]int
}

// Run tokenizes the input text, matches every token against the corpus
// and persists the run with all results atomically. Empty input yields
// a run with zero results; the run is persisted regardless.
func (s *Service) Run(ctx context.Context, in RunInput) (*RunResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.corpora.GetByID(ctx, in.CorpusID); err != nil {
		return nil, fmt.Errorf("get corpus %s: %w", in.CorpusID, err)
	}

	corpusTokens, err := s.tokens.ListByCorpus(ctx, in.CorpusID)
	if err != nil {
		return nil, fmt.Errorf("load corpus tokens: %w", err)
	}

	inputTokens, err := s.tokenizer.Tokenize(ctx, in.Text)
	if err != nil {
		return nil, fmt.Errorf("tokenize input: %w", err)
	}

	engine := matching.NewEngine(
		matching.BuildIndex(corpusTokens),
		s.cfg.MaxMoraLength,
		s.enabledSimilarity(),
	)

	run := domain.NewMatchRun(in.CorpusID, in.Text, domain.MatchConfig{
		MaxMoraLength:     s.cfg.MaxMoraLength,
		SimilarityEnabled: s.cfg.SimilarityEnabled && s.similarity != nil,
		MinSimilarity:     s.cfg.MinSimilarity,
	})
	for _, tok := range inputTokens {
		run.Append(engine.MatchToken(tok.Surface, tok.Reading, tok.POS))
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return s.runs.Save(txCtx, run)
	})
	if err != nil {
		return nil, fmt.Errorf("save run: %w", err)
	}

	stats := make(map[domain.MatchType]int, len(domain.AllMatchTypes()))
	for _, mt := range domain.AllMatchTypes() {
		stats[mt] = 0
	}
	for _, res := range run.Results {
		stats[res.Type]++
	}

	s.log.InfoContext(ctx, "match run saved",
		slog.String("run_id", run.ID),
		slog.String("corpus_id", run.CorpusID),
		slog.Int("results", len(run.Results)))

	return &RunResult{
		RunID:       run.ID,
		CorpusID:    run.CorpusID,
		ResultCount: len(run.Results),
		Stats:       stats,
	}, nil
}

func (s *Service) enabledSimilarity() matching.SimilarityProvider {
	if !s.cfg.SimilarityEnabled {
		return nil
	}
	return s.similarity
}
