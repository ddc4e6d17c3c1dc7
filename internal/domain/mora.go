package domain

// Mora is a single Japanese phonetic unit, written in katakana.
// A mora may span two runes when a small combining kana follows a base
// kana ("キョ", "ファ"), and the markers ッ, ン, ー each form a mora of
// their own.
type Mora string

func (m Mora) String() string { return string(m) }

// Katakana ranges used by the splitter. The base range ァ..ヶ covers
// every regular katakana rune including ッ and ン; the long-vowel mark ー
// sits outside it and is handled separately.
const (
	katakanaBaseLo = 'ァ' // U+30A1
	katakanaBaseHi = 'ヶ' // U+30F6
	longVowelMark  = 'ー' // U+30FC
)

// isSmallKana reports whether r is a small combining kana that attaches
// to the preceding base kana (ャュョ and small vowels ァィゥェォ).
func isSmallKana(r rune) bool {
	switch r {
	case 'ャ', 'ュ', 'ョ', 'ァ', 'ィ', 'ゥ', 'ェ', 'ォ':
		return true
	}
	return false
}

// SplitMoras segments a katakana string into moras, scanning left to
// right with non-overlapping greedy rules:
//
//  1. A base katakana rune, optionally followed by one small combining
//     kana, forms one mora ("キョ", "ファ", "ティ").
//  2. The long-vowel mark ー forms a standalone mora.
//  3. Any other rune is dropped without error.
//
// Empty input yields an empty (nil) slice. Input is expected to be
// normalized katakana; hiragana runes fall under rule 3 and vanish, so
// callers should run NormalizeReading first.
func SplitMoras(katakana string) []Mora {
	if katakana == "" {
		return nil
	}

	runes := []rune(katakana)
	var moras []Mora
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r >= katakanaBaseLo && r <= katakanaBaseHi:
			if i+1 < len(runes) && isSmallKana(runes[i+1]) {
				moras = append(moras, Mora(string(runes[i:i+2])))
				i += 2
				continue
			}
			moras = append(moras, Mora(r))
			i++
		case r == longVowelMark:
			moras = append(moras, Mora(r))
			i++
		default:
			// Non-kana rune: skip silently.
			i++
		}
	}
	return moras
}

// JoinMoras concatenates moras back into a katakana string.
func JoinMoras(moras []Mora) string {
	var b []byte
	for _, m := range moras {
		b = append(b, m...)
	}
	return string(b)
}
