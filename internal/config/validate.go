package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("database.max_conns must be > 0 (got %d)", c.Database.MaxConns)
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns must be in [0, max_conns] (got %d)", c.Database.MinConns)
	}

	if err := c.Matching.validate(); err != nil {
		return fmt.Errorf("matching: %w", err)
	}

	if c.Eval.Workers <= 0 {
		return fmt.Errorf("eval.workers must be > 0 (got %d)", c.Eval.Workers)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (m *MatchingConfig) validate() error {
	if m.MaxMoraLength <= 0 {
		return fmt.Errorf("max_mora_length must be > 0 (got %d)", m.MaxMoraLength)
	}
	if m.MinSimilarity < 0 || m.MinSimilarity > 1 {
		return fmt.Errorf("min_similarity must be in [0, 1] (got %v)", m.MinSimilarity)
	}
	return nil
}
