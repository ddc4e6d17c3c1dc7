package lyrics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

// DeleteCorpus removes a corpus and all of its tokens in one
// transaction.
func (s *Service) DeleteCorpus(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewValidationError("id", "required")
	}

	var deleted int
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		n, err := s.tokens.DeleteByCorpus(txCtx, id)
		if err != nil {
			return fmt.Errorf("delete tokens: %w", err)
		}
		deleted = n
		if err := s.corpora.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete corpus: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "corpus deleted",
		slog.String("corpus_id", id),
		slog.Int("tokens", deleted))
	return nil
}
