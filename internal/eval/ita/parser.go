// Package ita parses the ITA recitation corpus, the fixed sentence set
// used as evaluation input for reconstruction quality.
package ita

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Sentence is one evaluation sentence: an identifier, the text to
// match, and the katakana reference reading the reconstruction is
// scored against.
type Sentence struct {
	ID      string
	Text    string
	Reading string
}

// Parse reads sentences in the "ID:text,READING" line format. The id
// ends at the first colon; the reading starts after the last comma, so
// commas inside the text survive. Blank and malformed lines are
// skipped.
func Parse(r io.Reader) ([]Sentence, error) {
	var out []Sentence

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		id, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		cut := strings.LastIndex(rest, ",")
		if cut < 0 {
			continue
		}

		s := Sentence{
			ID:      strings.TrimSpace(id),
			Text:    strings.TrimSpace(rest[:cut]),
			Reading: strings.TrimSpace(rest[cut+1:]),
		}
		if s.ID == "" || s.Text == "" || s.Reading == "" {
			continue
		}
		out = append(out, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan ita corpus: %w", err)
	}

	return out, nil
}

// ParseFile parses a corpus file from disk.
func ParseFile(path string) ([]Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ita corpus: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
