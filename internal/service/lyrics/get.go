package lyrics

import (
	"context"
	"fmt"

	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

// GetCorpus returns a single corpus with its token count.
func (s *Service) GetCorpus(ctx context.Context, id string) (*domain.LyricsCorpus, int, error) {
	if id == "" {
		return nil, 0, domain.NewValidationError("id", "required")
	}

	c, err := s.corpora.GetByID(ctx, id)
	if err != nil {
		return nil, 0, fmt.Errorf("get corpus %s: %w", id, err)
	}
	count, err := s.tokens.CountByCorpus(ctx, id)
	if err != nil {
		return nil, 0, fmt.Errorf("count tokens for corpus %s: %w", id, err)
	}

	return c, count, nil
}
