package testhelper

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// SeedCorpus inserts a corpus row with a unique id and content hash.
// Returns the filled domain.LyricsCorpus.
func SeedCorpus(t *testing.T, pool *pgxpool.Pool) domain.LyricsCorpus {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	title := "Test Song " + suffix
	artist := "Test Artist"
	c := domain.LyricsCorpus{
		ID:          "corpus_" + suffix,
		Title:       &title,
		Artist:      &artist,
		ContentHash: domain.HashContent("seed lyrics " + suffix),
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO corpora (id, title, artist, content_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Title, c.Artist, c.ContentHash, c.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCorpus insert: %v", err)
	}

	return c
}

// SeedTokens inserts the two-line fixture lyrics
// (東京の空は青い / 桜が咲いている) for the given corpus and returns the
// tokens in corpus order.
func SeedTokens(t *testing.T, pool *pgxpool.Pool, corpusID string) []*domain.LyricToken {
	t.Helper()
	ctx := context.Background()

	type row struct {
		surface, reading string
		line, idx        int
	}
	rows := []row{
		{"東京", "トウキョウ", 0, 0},
		{"の", "ノ", 0, 1},
		{"空", "ソラ", 0, 2},
		{"は", "ハ", 0, 3},
		{"青い", "アオイ", 0, 4},
		{"桜", "サクラ", 1, 0},
		{"が", "ガ", 1, 1},
		{"咲い", "サイ", 1, 2},
		{"て", "テ", 1, 3},
		{"いる", "イル", 1, 4},
	}

	tokens := make([]*domain.LyricToken, 0, len(rows))
	for _, r := range rows {
		tok := &domain.LyricToken{
			CorpusID:   corpusID,
			Surface:    r.surface,
			Reading:    domain.NewReading(r.reading),
			Lemma:      r.surface,
			POS:        "名詞",
			LineIndex:  r.line,
			TokenIndex: r.idx,
		}
		_, err := pool.Exec(ctx,
			`INSERT INTO lyric_tokens (id, corpus_id, surface, reading, lemma, pos, line_index, token_index, moras)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, '[]'::jsonb)`,
			tok.ID(), tok.CorpusID, tok.Surface, r.reading, tok.Lemma, tok.POS, tok.LineIndex, tok.TokenIndex,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedTokens insert %s: %v", tok.ID(), err)
		}
		tokens = append(tokens, tok)
	}

	return tokens
}
