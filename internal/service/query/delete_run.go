package query

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

// DeleteRun removes a run and its results in one transaction.
func (s *Service) DeleteRun(ctx context.Context, runID string) error {
	if runID == "" {
		return domain.NewValidationError("run_id", "required")
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return s.runs.Delete(txCtx, runID)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "run deleted", slog.String("run_id", runID))
	return nil
}
