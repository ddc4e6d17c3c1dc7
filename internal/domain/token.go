package domain

import "fmt"

// LyricToken is one morpheme of a registered lyrics corpus. Tokens are
// created once during corpus registration and never change afterwards.
type LyricToken struct {
	CorpusID   string
	Surface    string
	Reading    Reading
	Lemma      string
	POS        string
	LineIndex  int
	TokenIndex int
}

// ID returns the deterministic token identity
// "{corpus_id}_{line_index}_{token_index}". Mora provenance records
// reference tokens by this exact string, so the format is a contract,
// not a display convenience.
func (t *LyricToken) ID() string {
	return fmt.Sprintf("%s_%d_%d", t.CorpusID, t.LineIndex, t.TokenIndex)
}

// Moras returns the token's reading split into mora units.
func (t *LyricToken) Moras() []Mora {
	return t.Reading.Moras()
}

// TokenData is the tokenizer output for a single morpheme, not yet
// bound to a corpus.
type TokenData struct {
	Surface string
	Reading string
	Lemma   string
	POS     string
}
