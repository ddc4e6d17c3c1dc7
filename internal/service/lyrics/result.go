package lyrics

import "time"

// RegisterResult is the outcome of a corpus registration.
type RegisterResult struct {
	CorpusID          string
	TokenCount        int
	AlreadyRegistered bool
}

// CorpusSummary is one row of the corpus listing.
type CorpusSummary struct {
	ID         string
	Title      *string
	Artist     *string
	CreatedAt  time.Time
	TokenCount int
	Preview    string
}
