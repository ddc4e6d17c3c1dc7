package lyrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

// RegisterCorpus tokenizes a lyrics text and stores it as a corpus.
// Identical raw text (by content hash) resolves to the already
// registered corpus without re-tokenization.
func (s *Service) RegisterCorpus(ctx context.Context, in RegisterCorpusInput) (*RegisterResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash := domain.HashContent(in.Text)

	existing, err := s.corpora.GetByContentHash(ctx, hash)
	switch {
	case err == nil:
		count, err := s.tokens.CountByCorpus(ctx, existing.ID)
		if err != nil {
			return nil, fmt.Errorf("count tokens for corpus %s: %w", existing.ID, err)
		}
		s.log.InfoContext(ctx, "corpus already registered",
			slog.String("corpus_id", existing.ID))
		return &RegisterResult{
			CorpusID:          existing.ID,
			TokenCount:        count,
			AlreadyRegistered: true,
		}, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("look up corpus by content hash: %w", err)
	}

	c := &domain.LyricsCorpus{
		ID:          domain.NewCorpusID(),
		Title:       trimOrNil(in.Title),
		Artist:      trimOrNil(in.Artist),
		ContentHash: hash,
		CreatedAt:   time.Now().UTC(),
	}

	tokens, err := s.tokenizeLines(ctx, c.ID, in.Text)
	if err != nil {
		return nil, fmt.Errorf("tokenize lyrics: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.corpora.Create(txCtx, c); err != nil {
			return fmt.Errorf("create corpus: %w", err)
		}
		if err := s.tokens.BatchSave(txCtx, tokens); err != nil {
			return fmt.Errorf("save tokens: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "corpus registered",
		slog.String("corpus_id", c.ID),
		slog.Int("tokens", len(tokens)))

	return &RegisterResult{CorpusID: c.ID, TokenCount: len(tokens)}, nil
}

// tokenizeLines runs the tokenizer per line. The line index counts
// non-empty lines only, so blank separator lines between verses do not
// shift token identities.
func (s *Service) tokenizeLines(ctx context.Context, corpusID, text string) ([]*domain.LyricToken, error) {
	var out []*domain.LyricToken

	lineIdx := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		data, err := s.tokenizer.Tokenize(ctx, line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineIdx, err)
		}
		for i, d := range data {
			out = append(out, &domain.LyricToken{
				CorpusID:   corpusID,
				Surface:    d.Surface,
				Reading:    domain.NewReading(d.Reading),
				Lemma:      d.Lemma,
				POS:        d.POS,
				LineIndex:  lineIdx,
				TokenIndex: i,
			})
		}
		lineIdx++
	}

	return out, nil
}
