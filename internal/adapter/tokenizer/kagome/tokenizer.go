// Package kagome implements the morphological tokenization boundary
// using the kagome v2 analyzer with the bundled IPA dictionary.
package kagome

import (
	"context"
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
	"golang.org/x/text/unicode/norm"

	"github.com/heartmarshall/lyrictalk-backend/internal/config"
	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

// IPA dictionary feature indices.
const (
	featPOS     = 0 // primary part of speech
	featLemma   = 6 // dictionary base form
	featReading = 7 // reading in katakana
)

const posSymbol = "記号"

// Tokenizer converts raw Japanese text into (surface, reading, lemma,
// pos) tuples. Construction loads the embedded IPA dictionary once; the
// instance is safe for concurrent use.
type Tokenizer struct {
	t           *tokenizer.Tokenizer
	skipSymbols bool
}

// New builds a tokenizer over the IPA dictionary, with BOS/EOS markers
// omitted from the output.
func New(cfg config.TokenizerConfig) (*Tokenizer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("kagome: init tokenizer: %w", err)
	}
	return &Tokenizer{t: t, skipSymbols: cfg.SkipSymbols}, nil
}

// Tokenize analyzes text and returns one TokenData per morpheme, in
// input order. Empty or whitespace-only input returns nil without
// error. Symbols and whitespace morphemes are dropped so that every
// returned token is matchable material.
func (tk *Tokenizer) Tokenize(ctx context.Context, text string) ([]domain.TokenData, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// NFKC folds full-width ASCII and half-width kana before analysis.
	normalized := norm.NFKC.String(text)

	var out []domain.TokenData
	for _, tok := range tk.t.Tokenize(normalized) {
		if tok.Class == tokenizer.DUMMY {
			continue
		}
		if strings.TrimSpace(tok.Surface) == "" {
			continue
		}

		features := tok.Features()

		pos := ""
		if len(features) > featPOS {
			pos = features[featPOS]
		}
		if tk.skipSymbols && pos == posSymbol {
			continue
		}

		lemma := tok.Surface
		if len(features) > featLemma && features[featLemma] != "*" {
			lemma = features[featLemma]
		}

		reading := ""
		if len(features) > featReading && features[featReading] != "*" {
			reading = features[featReading]
		}
		if reading == "" {
			// Unknown words carry no reading; treat the surface as kana
			// and normalize. Non-kana surfaces then split to zero moras
			// and end up as no_match, which is the intended degradation.
			reading = domain.NormalizeReading(tok.Surface)
		}

		out = append(out, domain.TokenData{
			Surface: tok.Surface,
			Reading: reading,
			Lemma:   lemma,
			POS:     pos,
		})
	}

	return out, nil
}
