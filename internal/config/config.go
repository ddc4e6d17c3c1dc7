package config

import "time"

// Config is the root application configuration.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Matching  MatchingConfig  `yaml:"matching"`
	Eval      EvalConfig      `yaml:"eval"`
	Log       LogConfig       `yaml:"log"`
}

// AppConfig holds application-wide settings.
type AppConfig struct {
	Name string `yaml:"name" env:"APP_NAME" env-default:"lyrictalk"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// TokenizerConfig holds morphological analysis settings.
type TokenizerConfig struct {
	// SkipSymbols drops punctuation/symbol morphemes (POS 記号) from the
	// tokenizer output. The matching engine expects this to be on.
	SkipSymbols bool `yaml:"skip_symbols" env:"TOKENIZER_SKIP_SYMBOLS" env-default:"true"`
}

// MatchingConfig holds matching engine settings. The values are
// snapshotted into every match run.
type MatchingConfig struct {
	// MaxMoraLength caps the mora-combination search per token.
	MaxMoraLength int `yaml:"max_mora_length" env:"MATCHING_MAX_MORA_LENGTH" env-default:"5"`

	// SimilarityEnabled turns on the similar-word fallback for content
	// words that the exact cascade could not match.
	SimilarityEnabled bool `yaml:"similarity_enabled" env:"MATCHING_SIMILARITY_ENABLED" env-default:"false"`

	// MinSimilarity is the acceptance threshold for the fallback, in [0,1].
	MinSimilarity float64 `yaml:"min_similarity" env:"MATCHING_MIN_SIMILARITY" env-default:"0.6"`
}

// EvalConfig holds evaluation pipeline settings.
type EvalConfig struct {
	CorpusFile string `yaml:"corpus_file" env:"EVAL_CORPUS_FILE" env-default:"eval/ita_corpus.txt"`
	OutputDir  string `yaml:"output_dir"  env:"EVAL_OUTPUT_DIR"  env-default:"eval/results"`
	Workers    int    `yaml:"workers"     env:"EVAL_WORKERS"     env-default:"4"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
