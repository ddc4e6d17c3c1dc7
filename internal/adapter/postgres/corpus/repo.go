// Package corpus implements the LyricsCorpus repository using PostgreSQL.
// Registration-time deduplication runs through the content_hash unique
// column: identical lyrics text always resolves to one stored corpus.
package corpus

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/lyrictalk-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// normalizeFilter clamps the listing limit: default 20, max 100.
// TitleSearch maps to ILIKE '%...%' on title.
func normalizeFilter(f *domain.CorpusFilter) {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
}

// Repo provides corpus persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new corpus repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getByIDSQL = `
SELECT id, title, artist, content_hash, created_at
FROM corpora
WHERE id = $1`

// GetByID returns a corpus by primary key.
// Returns domain.ErrNotFound if the corpus does not exist.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.LyricsCorpus, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCorpus(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "corpus", id)
	}
	return c, nil
}

const getByContentHashSQL = `
SELECT id, title, artist, content_hash, created_at
FROM corpora
WHERE content_hash = $1`

// GetByContentHash returns the corpus registered for the given raw-text
// hash. Returns domain.ErrNotFound when the text was never registered.
func (r *Repo) GetByContentHash(ctx context.Context, hash string) (*domain.LyricsCorpus, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCorpus(querier.QueryRow(ctx, getByContentHashSQL, hash))
	if err != nil {
		return nil, postgres.MapError(err, "corpus", hash)
	}
	return c, nil
}

// List returns corpora newest first, optionally filtered by a title
// substring. Returns an empty slice (not nil) when nothing matches.
func (r *Repo) List(ctx context.Context, f domain.CorpusFilter) ([]*domain.LyricsCorpus, error) {
	normalizeFilter(&f)

	query := builder.
		Select("id", "title", "artist", "content_hash", "created_at").
		From("corpora").
		OrderBy("created_at DESC, id").
		Limit(uint64(f.Limit))

	if f.TitleSearch != "" {
		query = query.Where(sq.ILike{"title": "%" + f.TitleSearch + "%"})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list corpora query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list corpora: %w", err)
	}
	defer rows.Close()

	corpora := []*domain.LyricsCorpus{}
	for rows.Next() {
		c, err := scanCorpus(rows)
		if err != nil {
			return nil, fmt.Errorf("list corpora: %w", err)
		}
		corpora = append(corpora, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list corpora: %w", err)
	}

	return corpora, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO corpora (id, title, artist, content_hash, created_at)
VALUES ($1, $2, $3, $4, $5)`

// Create inserts a new corpus.
// Returns domain.ErrAlreadyExists if the content hash is already registered.
func (r *Repo) Create(ctx context.Context, c *domain.LyricsCorpus) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createSQL, c.ID, c.Title, c.Artist, c.ContentHash, c.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "corpus", c.ID)
	}
	return nil
}

const deleteSQL = `DELETE FROM corpora WHERE id = $1`

// Delete removes a corpus. Returns domain.ErrNotFound if it does not
// exist. Tokens must be removed first; a remaining reference surfaces
// as a foreign-key error mapped by MapError.
func (r *Repo) Delete(ctx context.Context, id string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "corpus", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("corpus %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scan helpers
// ---------------------------------------------------------------------------

func scanCorpus(row pgx.Row) (*domain.LyricsCorpus, error) {
	var c domain.LyricsCorpus
	if err := row.Scan(&c.ID, &c.Title, &c.Artist, &c.ContentHash, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
