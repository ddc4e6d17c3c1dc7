// Package match runs input text against a registered corpus and
// persists the outcome as an immutable match run.
package match

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/lyrictalk-backend/internal/config"
	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
	"github.com/heartmarshall/lyrictalk-backend/internal/matching"
)

type corpusRepo interface {
	GetByID(ctx context.Context, id string) (*domain.LyricsCorpus, error)
}

type tokenRepo interface {
	ListByCorpus(ctx context.Context, corpusID string) ([]*domain.LyricToken, error)
}

type runRepo interface {
	Save(ctx context.Context, run *domain.MatchRun) error
}

type tokenizerPort interface {
	Tokenize(ctx context.Context, text string) ([]domain.TokenData, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service runs the matching cascade over persisted corpora.
type Service struct {
	corpora    corpusRepo
	tokens     tokenRepo
	runs       runRepo
	tokenizer  tokenizerPort
	tx         txManager
	cfg        config.MatchingConfig
	similarity matching.SimilarityProvider // nil when the fallback is off
	log        *slog.Logger
}

// NewService creates a new match service. similarity may be nil; it is
// only consulted when cfg.SimilarityEnabled is set.
func NewService(
	log *slog.Logger,
	corpora corpusRepo,
	tokens tokenRepo,
	runs runRepo,
	tokenizer tokenizerPort,
	tx txManager,
	cfg config.MatchingConfig,
	similarity matching.SimilarityProvider,
) *Service {
	return &Service{
		corpora:    corpora,
		tokens:     tokens,
		runs:       runs,
		tokenizer:  tokenizer,
		tx:         tx,
		cfg:        cfg,
		similarity: similarity,
		log:        log.With(slog.String("service", "match")),
	}
}
