// Package lyrics provides corpus registration and management: raw
// lyrics text in, a tokenized and deduplicated corpus in storage out.
package lyrics

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

// previewTokens is the number of leading token surfaces shown in
// corpus list summaries.
const previewTokens = 10

type corpusRepo interface {
	Create(ctx context.Context, c *domain.LyricsCorpus) error
	GetByID(ctx context.Context, id string) (*domain.LyricsCorpus, error)
	GetByContentHash(ctx context.Context, hash string) (*domain.LyricsCorpus, error)
	List(ctx context.Context, f domain.CorpusFilter) ([]*domain.LyricsCorpus, error)
	Delete(ctx context.Context, id string) error
}

type tokenRepo interface {
	BatchSave(ctx context.Context, tokens []*domain.LyricToken) error
	CountByCorpus(ctx context.Context, corpusID string) (int, error)
	FirstSurfaces(ctx context.Context, corpusID string, n int) ([]string, error)
	DeleteByCorpus(ctx context.Context, corpusID string) (int, error)
}

type tokenizerPort interface {
	Tokenize(ctx context.Context, text string) ([]domain.TokenData, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides corpus management operations.
type Service struct {
	corpora   corpusRepo
	tokens    tokenRepo
	tokenizer tokenizerPort
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new lyrics service.
func NewService(
	log *slog.Logger,
	corpora corpusRepo,
	tokens tokenRepo,
	tokenizer tokenizerPort,
	tx txManager,
) *Service {
	return &Service{
		corpora:   corpora,
		tokens:    tokens,
		tokenizer: tokenizer,
		tx:        tx,
		log:       log.With(slog.String("service", "lyrics")),
	}
}
