package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LyricsCorpus is one registered lyrics text. The content hash
// deduplicates registrations: identical raw text always resolves to the
// same corpus, without re-tokenization.
type LyricsCorpus struct {
	ID          string
	Title       *string
	Artist      *string
	ContentHash string
	CreatedAt   time.Time
}

// NewCorpusID generates a corpus identifier of the form "corpus_<12 hex>".
func NewCorpusID() string {
	return "corpus_" + shortID()
}

// NewRunID generates a match run identifier of the form "run_<12 hex>".
func NewRunID() string {
	return "run_" + shortID()
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// HashContent returns the SHA-256 hex digest of the raw lyrics text.
// Leading and trailing whitespace is ignored so that a trailing newline
// does not defeat deduplication.
func HashContent(text string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:])
}
