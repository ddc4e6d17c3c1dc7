//go:build e2e

package e2e

import (
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lyrictalk-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lyrictalk-backend/internal/adapter/postgres/corpus"
	"github.com/heartmarshall/lyrictalk-backend/internal/adapter/postgres/matchrun"
	"github.com/heartmarshall/lyrictalk-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/lyrictalk-backend/internal/adapter/postgres/token"
	"github.com/heartmarshall/lyrictalk-backend/internal/adapter/similarity/levenshtein"
	"github.com/heartmarshall/lyrictalk-backend/internal/adapter/tokenizer/kagome"
	"github.com/heartmarshall/lyrictalk-backend/internal/config"
	"github.com/heartmarshall/lyrictalk-backend/internal/matching"
	"github.com/heartmarshall/lyrictalk-backend/internal/service/lyrics"
	"github.com/heartmarshall/lyrictalk-backend/internal/service/match"
	"github.com/heartmarshall/lyrictalk-backend/internal/service/query"
)

// env is the full service graph over a real database and the real
// morphological analyzer, as the commands wire it.
type env struct {
	pool   *pgxpool.Pool
	lyrics *lyrics.Service
	match  *match.Service
	query  *query.Service
}

func newEnv(t *testing.T, matchingCfg config.MatchingConfig) *env {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokenizer, err := kagome.New(config.TokenizerConfig{SkipSymbols: true})
	require.NoError(t, err, "init tokenizer")

	corpora := corpus.New(pool)
	tokens := token.New(pool)
	runs := matchrun.New(pool)
	txm := postgres.NewTxManager(pool)

	var similarity matching.SimilarityProvider
	if matchingCfg.SimilarityEnabled {
		similarity = levenshtein.New(matchingCfg.MinSimilarity)
	}

	return &env{
		pool:   pool,
		lyrics: lyrics.NewService(log, corpora, tokens, tokenizer, txm),
		match:  match.NewService(log, corpora, tokens, runs, tokenizer, txm, matchingCfg, similarity),
		query:  query.NewService(log, runs, tokens, txm),
	}
}

func defaultMatchingCfg() config.MatchingConfig {
	return config.MatchingConfig{MaxMoraLength: 5, MinSimilarity: 0.6}
}
