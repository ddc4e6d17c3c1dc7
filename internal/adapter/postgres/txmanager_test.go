package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/lyrictalk-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lyrictalk-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

// corpusExists checks whether a corpus row with the given id exists.
func corpusExists(t *testing.T, pool *pgxpool.Pool, id string) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM corpora WHERE id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("corpusExists query: %v", err)
	}
	return exists
}

func insertCorpus(ctx context.Context, q postgres.Querier, id string) error {
	_, err := q.Exec(ctx,
		`INSERT INTO corpora (id, content_hash, created_at) VALUES ($1, $2, $3)`,
		id, domain.HashContent(id), time.Now().UTC(),
	)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := domain.NewCorpusID()
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertCorpus(ctx, postgres.QuerierFromCtx(ctx, pool), id)
	})
	if err != nil {
		t.Fatalf("RunInTx: %v", err)
	}

	if !corpusExists(t, pool, id) {
		t.Error("corpus must be visible after commit")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := domain.NewCorpusID()
	wantErr := errors.New("boom")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertCorpus(ctx, postgres.QuerierFromCtx(ctx, pool), id); err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("RunInTx error = %v, want %v", err, wantErr)
	}

	if corpusExists(t, pool, id) {
		t.Error("corpus must not be visible after rollback")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := domain.NewCorpusID()

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic to propagate")
			}
		}()
		_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
			if err := insertCorpus(ctx, postgres.QuerierFromCtx(ctx, pool), id); err != nil {
				return err
			}
			panic("boom")
		})
	}()

	if corpusExists(t, pool, id) {
		t.Error("corpus must not be visible after panic rollback")
	}
}
