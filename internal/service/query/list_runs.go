package query

import (
	"context"
	"fmt"

	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

// ListRuns returns stored run summaries, newest first.
func (s *Service) ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	summaries, err := s.runs.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return summaries, nil
}
