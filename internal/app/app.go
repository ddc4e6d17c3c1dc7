// Package app wires configuration, storage, the tokenizer and the
// services together for the command-line entry points.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/lyrictalk-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lyrictalk-backend/internal/adapter/postgres/corpus"
	"github.com/heartmarshall/lyrictalk-backend/internal/adapter/postgres/matchrun"
	"github.com/heartmarshall/lyrictalk-backend/internal/adapter/postgres/token"
	"github.com/heartmarshall/lyrictalk-backend/internal/adapter/similarity/levenshtein"
	"github.com/heartmarshall/lyrictalk-backend/internal/adapter/tokenizer/kagome"
	"github.com/heartmarshall/lyrictalk-backend/internal/config"
	"github.com/heartmarshall/lyrictalk-backend/internal/eval"
	"github.com/heartmarshall/lyrictalk-backend/internal/matching"
	"github.com/heartmarshall/lyrictalk-backend/internal/service/lyrics"
	"github.com/heartmarshall/lyrictalk-backend/internal/service/match"
	"github.com/heartmarshall/lyrictalk-backend/internal/service/query"
)

// App holds the assembled application: services ready to use plus the
// resources they own.
type App struct {
	Cfg    *config.Config
	Log    *slog.Logger
	Lyrics *lyrics.Service
	Match  *match.Service
	Query  *query.Service
	Eval   *eval.Pipeline

	pool *pgxpool.Pool
}

// Bootstrap loads configuration and builds the full service graph. The
// caller must Close the returned App.
func Bootstrap(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := NewLogger(cfg.Log)
	log.Info("starting application",
		slog.String("app", cfg.App.Name),
		slog.String("version", BuildVersion()),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	tokenizer, err := kagome.New(cfg.Tokenizer)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init tokenizer: %w", err)
	}

	corpora := corpus.New(pool)
	tokens := token.New(pool)
	runs := matchrun.New(pool)
	txm := postgres.NewTxManager(pool)

	var similarity matching.SimilarityProvider
	if cfg.Matching.SimilarityEnabled {
		similarity = levenshtein.New(cfg.Matching.MinSimilarity)
	}

	lyricsSvc := lyrics.NewService(log, corpora, tokens, tokenizer, txm)
	matchSvc := match.NewService(log, corpora, tokens, runs, tokenizer, txm, cfg.Matching, similarity)
	querySvc := query.NewService(log, runs, tokens, txm)

	return &App{
		Cfg:    cfg,
		Log:    log,
		Lyrics: lyricsSvc,
		Match:  matchSvc,
		Query:  querySvc,
		Eval:   eval.NewPipeline(log, matchSvc, querySvc, cfg.Eval),
		pool:   pool,
	}, nil
}

// Close releases the database pool.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
