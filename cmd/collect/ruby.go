package main

import "regexp"

// Furigana markup duplicates every kanji's reading in the extracted
// text ("漢字" becomes "漢字かんじ"), so ruby annotations are removed
// before readability sees the HTML.
var (
	reRT = regexp.MustCompile(`(?si)<rt\b[^>]*>.*?</rt>`)
	reRP = regexp.MustCompile(`(?si)<rp\b[^>]*>.*?</rp>`)
)

func stripRuby(html []byte) []byte {
	cleaned := reRT.ReplaceAll(html, nil)
	return reRP.ReplaceAll(cleaned, nil)
}
