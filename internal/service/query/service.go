// Package query reads persisted match runs back out: full per-token
// reports with resolved provenance, reconstruction summaries, listings
// and deletion.
package query

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

type runRepo interface {
	GetByID(ctx context.Context, id string) (*domain.MatchRun, error)
	List(ctx context.Context, limit int) ([]domain.RunSummary, error)
	Delete(ctx context.Context, id string) error
}

type tokenRepo interface {
	ListByCorpus(ctx context.Context, corpusID string) ([]*domain.LyricToken, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides read access to stored match runs.
type Service struct {
	runs   runRepo
	tokens tokenRepo
	tx     txManager
	log    *slog.Logger
}

// NewService creates a new query service.
func NewService(log *slog.Logger, runs runRepo, tokens tokenRepo, tx txManager) *Service {
	return &Service{
		runs:   runs,
		tokens: tokens,
		tx:     tx,
		log:    log.With(slog.String("service", "query")),
	}
}
