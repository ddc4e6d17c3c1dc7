package domain

import "strings"

// Reading is the pronunciation of a token. The raw form may be hiragana
// or katakana; Normalized always returns katakana so that readings
// compare equal regardless of the script they arrived in.
type Reading struct {
	Raw string
}

// NewReading wraps a raw kana string.
func NewReading(raw string) Reading {
	return Reading{Raw: raw}
}

// Normalized returns the reading converted to katakana.
func (r Reading) Normalized() string {
	return NormalizeReading(r.Raw)
}

// Moras splits the normalized reading into mora units.
func (r Reading) Moras() []Mora {
	return SplitMoras(r.Normalized())
}

// Hiragana block convertible to katakana by a fixed offset.
const (
	hiraganaLo    = 'ぁ' // ぁ
	hiraganaHi    = 'ゖ' // ゖ
	kanaScriptGap = 0x60     // distance between ぁ and ァ
)

// NormalizeReading converts hiragana runes to their katakana
// counterparts. Runes outside the convertible hiragana block, including
// katakana, the long-vowel mark, and non-kana characters, pass through
// unchanged.
func NormalizeReading(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= hiraganaLo && r <= hiraganaHi {
			r += kanaScriptGap
		}
		b.WriteRune(r)
	}
	return b.String()
}
