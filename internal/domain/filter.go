package domain

import "time"

// CorpusFilter contains filtering/pagination parameters for corpus
// listings.
type CorpusFilter struct {
	// TitleSearch performs a substring match on title. Empty means no
	// text filter.
	TitleSearch string

	// Limit is the maximum number of corpora to return.
	Limit int
}

// RunSummary is the listing view of a match run: metadata plus the
// result count, without the results themselves.
type RunSummary struct {
	ID          string
	CorpusID    string
	InputText   string
	CreatedAt   time.Time
	ResultCount int
}
