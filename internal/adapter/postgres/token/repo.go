// Package token implements the LyricToken repository using PostgreSQL.
// Tokens are written once per corpus registration and read back in
// corpus order (line index, then token index). The mora column is
// derived material kept for ad-hoc inspection; loads rebuild moras from
// the reading instead of trusting the stored copy.
package token

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/lyrictalk-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

// Repo provides lyric token persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new token repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const listByCorpusSQL = `
SELECT corpus_id, surface, reading, lemma, pos, line_index, token_index
FROM lyric_tokens
WHERE corpus_id = $1
ORDER BY line_index, token_index`

// ListByCorpus returns all tokens of a corpus in corpus order.
// Returns an empty slice (not nil) for an unknown or empty corpus.
func (r *Repo) ListByCorpus(ctx context.Context, corpusID string) ([]*domain.LyricToken, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByCorpusSQL, corpusID)
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}
	defer rows.Close()

	tokens := []*domain.LyricToken{}
	for rows.Next() {
		tok, err := scanToken(rows)
		if err != nil {
			return nil, fmt.Errorf("list tokens: %w", err)
		}
		tokens = append(tokens, tok)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}

	return tokens, nil
}

const countByCorpusSQL = `SELECT count(*) FROM lyric_tokens WHERE corpus_id = $1`

// CountByCorpus returns the number of stored tokens for a corpus.
func (r *Repo) CountByCorpus(ctx context.Context, corpusID string) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countByCorpusSQL, corpusID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count tokens: %w", err)
	}
	return count, nil
}

const firstSurfacesSQL = `
SELECT surface
FROM lyric_tokens
WHERE corpus_id = $1
ORDER BY line_index, token_index
LIMIT $2`

// FirstSurfaces returns the first n token surfaces of a corpus in
// corpus order, used for list previews.
func (r *Repo) FirstSurfaces(ctx context.Context, corpusID string, n int) ([]string, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, firstSurfacesSQL, corpusID, n)
	if err != nil {
		return nil, fmt.Errorf("first surfaces: %w", err)
	}
	defer rows.Close()

	surfaces := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("first surfaces: %w", err)
		}
		surfaces = append(surfaces, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("first surfaces: %w", err)
	}

	return surfaces, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const insertTokenSQL = `
INSERT INTO lyric_tokens (id, corpus_id, surface, reading, lemma, pos, line_index, token_index, moras)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// BatchSave inserts all tokens in one round trip via pgx batching.
// Token ids are the deterministic {corpus}_{line}_{token} strings.
func (r *Repo) BatchSave(ctx context.Context, tokens []*domain.LyricToken) error {
	if len(tokens) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, tok := range tokens {
		moras, err := json.Marshal(tok.Moras())
		if err != nil {
			return fmt.Errorf("marshal moras for %s: %w", tok.ID(), err)
		}
		batch.Queue(insertTokenSQL,
			tok.ID(), tok.CorpusID, tok.Surface, tok.Reading.Raw, tok.Lemma,
			tok.POS, tok.LineIndex, tok.TokenIndex, moras,
		)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for i := range tokens {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "token", tokens[i].ID())
		}
	}

	return nil
}

const deleteByCorpusSQL = `DELETE FROM lyric_tokens WHERE corpus_id = $1`

// DeleteByCorpus removes all tokens of a corpus and returns the number
// deleted. Idempotent: deleting an unknown corpus removes nothing.
func (r *Repo) DeleteByCorpus(ctx context.Context, corpusID string) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteByCorpusSQL, corpusID)
	if err != nil {
		return 0, fmt.Errorf("delete tokens: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Scan helpers
// ---------------------------------------------------------------------------

func scanToken(row pgx.Row) (*domain.LyricToken, error) {
	var (
		tok     domain.LyricToken
		reading string
	)
	err := row.Scan(&tok.CorpusID, &tok.Surface, &reading, &tok.Lemma,
		&tok.POS, &tok.LineIndex, &tok.TokenIndex)
	if err != nil {
		return nil, err
	}
	tok.Reading = domain.NewReading(reading)
	return &tok, nil
}
