package lyrics

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

// ListCorpora returns registered corpora, newest first, each with its
// token count and a short surface preview.
func (s *Service) ListCorpora(ctx context.Context, f domain.CorpusFilter) ([]CorpusSummary, error) {
	corpora, err := s.corpora.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list corpora: %w", err)
	}

	summaries := make([]CorpusSummary, 0, len(corpora))
	for _, c := range corpora {
		count, err := s.tokens.CountByCorpus(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("count tokens for corpus %s: %w", c.ID, err)
		}
		surfaces, err := s.tokens.FirstSurfaces(ctx, c.ID, previewTokens)
		if err != nil {
			return nil, fmt.Errorf("preview for corpus %s: %w", c.ID, err)
		}

		summaries = append(summaries, CorpusSummary{
			ID:         c.ID,
			Title:      c.Title,
			Artist:     c.Artist,
			CreatedAt:  c.CreatedAt,
			TokenCount: count,
			Preview:    strings.Join(surfaces, ""),
		})
	}

	return summaries, nil
}
