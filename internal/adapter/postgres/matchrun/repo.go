// Package matchrun implements the MatchRun repository using PostgreSQL.
// A run and its results form one aggregate: Save writes them together
// and callers wrap it in a transaction, so a run is never visible
// without its results. Result order is the input token order; rows
// carry an input_index column and reads restore the slice from it.
package matchrun

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/lyrictalk-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

// Repo provides match run persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new match run repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// moraDetailRow is the JSONB shape of one provenance entry.
type moraDetailRow struct {
	Mora          string `json:"mora"`
	SourceTokenID string `json:"source_token_id"`
	MoraIndex     int    `json:"mora_index"`
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const insertRunSQL = `
INSERT INTO match_runs (id, corpus_id, input_text, created_at, config)
VALUES ($1, $2, $3, $4, $5)`

const insertResultSQL = `
INSERT INTO match_results
    (id, run_id, input_index, input_surface, input_reading, match_type,
     matched_token_ids, mora_details, similar_word, similarity_score)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// Save persists a run together with all its results. Call it inside a
// transaction; a failed result insert must roll the run row back too.
func (r *Repo) Save(ctx context.Context, run *domain.MatchRun) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	config, err := json.Marshal(run.Config)
	if err != nil {
		return fmt.Errorf("marshal run config: %w", err)
	}

	_, err = querier.Exec(ctx, insertRunSQL,
		run.ID, run.CorpusID, run.InputText, run.CreatedAt, config)
	if err != nil {
		return postgres.MapError(err, "match_run", run.ID)
	}

	if len(run.Results) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i, res := range run.Results {
		matchedIDs, details, err := marshalResult(res)
		if err != nil {
			return fmt.Errorf("result %d: %w", i, err)
		}

		var (
			similarWord  *string
			similarScore *float64
		)
		if res.SimilarWord != "" {
			similarWord = &run.Results[i].SimilarWord
			similarScore = &run.Results[i].SimilarityScore
		}

		batch.Queue(insertResultSQL,
			uuid.New(), run.ID, i, res.InputSurface, res.InputReading,
			string(res.Type), matchedIDs, details, similarWord, similarScore,
		)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for range run.Results {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "match_run", run.ID)
		}
	}

	return nil
}

const deleteResultsSQL = `DELETE FROM match_results WHERE run_id = $1`
const deleteRunSQL = `DELETE FROM match_runs WHERE id = $1`

// Delete removes a run and its results. Call it inside a transaction.
// Returns domain.ErrNotFound if the run does not exist.
func (r *Repo) Delete(ctx context.Context, runID string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteResultsSQL, runID); err != nil {
		return postgres.MapError(err, "match_run", runID)
	}

	tag, err := querier.Exec(ctx, deleteRunSQL, runID)
	if err != nil {
		return postgres.MapError(err, "match_run", runID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("match_run %s: %w", runID, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getRunSQL = `
SELECT id, corpus_id, input_text, created_at, config
FROM match_runs
WHERE id = $1`

const getResultsSQL = `
SELECT input_surface, input_reading, match_type,
       matched_token_ids, mora_details, similar_word, similarity_score
FROM match_results
WHERE run_id = $1
ORDER BY input_index`

// GetByID loads the full aggregate: the run row plus all results in
// input order. Returns domain.ErrNotFound for an unknown id.
func (r *Repo) GetByID(ctx context.Context, runID string) (*domain.MatchRun, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		run    domain.MatchRun
		config []byte
	)
	err := querier.QueryRow(ctx, getRunSQL, runID).
		Scan(&run.ID, &run.CorpusID, &run.InputText, &run.CreatedAt, &config)
	if err != nil {
		return nil, postgres.MapError(err, "match_run", runID)
	}
	if err := json.Unmarshal(config, &run.Config); err != nil {
		return nil, fmt.Errorf("unmarshal run config: %w", err)
	}

	rows, err := querier.Query(ctx, getResultsSQL, runID)
	if err != nil {
		return nil, fmt.Errorf("load results for %s: %w", runID, err)
	}
	defer rows.Close()

	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("load results for %s: %w", runID, err)
		}
		run.Results = append(run.Results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load results for %s: %w", runID, err)
	}

	return &run, nil
}

// List returns run summaries newest first.
// Returns an empty slice (not nil) when no runs exist.
func (r *Repo) List(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	query := builder.
		Select(
			"r.id", "r.corpus_id", "r.input_text", "r.created_at",
			"(SELECT count(*) FROM match_results mr WHERE mr.run_id = r.id) AS result_count",
		).
		From("match_runs r").
		OrderBy("r.created_at DESC, r.id").
		Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list runs query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	summaries := []domain.RunSummary{}
	for rows.Next() {
		var s domain.RunSummary
		if err := rows.Scan(&s.ID, &s.CorpusID, &s.InputText, &s.CreatedAt, &s.ResultCount); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	return summaries, nil
}

// ---------------------------------------------------------------------------
// Marshal / scan helpers
// ---------------------------------------------------------------------------

func marshalResult(res domain.MatchResult) (matchedIDs, details []byte, err error) {
	ids := res.MatchedTokenIDs
	if ids == nil {
		ids = []string{}
	}
	matchedIDs, err = json.Marshal(ids)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal matched ids: %w", err)
	}

	rows := make([]moraDetailRow, len(res.MoraDetails))
	for i, d := range res.MoraDetails {
		rows[i] = moraDetailRow{
			Mora:          string(d.Mora),
			SourceTokenID: d.SourceTokenID,
			MoraIndex:     d.MoraIndex,
		}
	}
	details, err = json.Marshal(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal mora details: %w", err)
	}

	return matchedIDs, details, nil
}

func scanResult(row pgx.Row) (domain.MatchResult, error) {
	var (
		res          domain.MatchResult
		matchType    string
		matchedIDs   []byte
		details      []byte
		similarWord  *string
		similarScore *float64
	)
	err := row.Scan(&res.InputSurface, &res.InputReading, &matchType,
		&matchedIDs, &details, &similarWord, &similarScore)
	if err != nil {
		return domain.MatchResult{}, err
	}

	res.Type = domain.MatchType(matchType)

	var ids []string
	if err := json.Unmarshal(matchedIDs, &ids); err != nil {
		return domain.MatchResult{}, fmt.Errorf("unmarshal matched ids: %w", err)
	}
	if len(ids) > 0 {
		res.MatchedTokenIDs = ids
	}

	var detailRows []moraDetailRow
	if err := json.Unmarshal(details, &detailRows); err != nil {
		return domain.MatchResult{}, fmt.Errorf("unmarshal mora details: %w", err)
	}
	for _, d := range detailRows {
		res.MoraDetails = append(res.MoraDetails, domain.MoraDetail{
			Mora:          domain.Mora(d.Mora),
			SourceTokenID: d.SourceTokenID,
			MoraIndex:     d.MoraIndex,
		})
	}

	if similarWord != nil {
		res.SimilarWord = *similarWord
	}
	if similarScore != nil {
		res.SimilarityScore = *similarScore
	}

	return res, nil
}
