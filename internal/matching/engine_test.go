package matching

import (
	"reflect"
	"testing"

	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

const defaultMaxMora = 5

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(BuildIndex(testTokens()), defaultMaxMora, nil)
}

func TestMatchToken_ExactSurface(t *testing.T) {
	t.Parallel()
	eng := newTestEngine(t)

	res := eng.MatchToken("東京", "トウキョウ", "名詞")
	if res.Type != domain.MatchExactSurface {
		t.Fatalf("type = %s, want %s", res.Type, domain.MatchExactSurface)
	}
	if want := []string{testCorpusID + "_0_0"}; !reflect.DeepEqual(res.MatchedTokenIDs, want) {
		t.Errorf("matched ids = %v, want %v", res.MatchedTokenIDs, want)
	}
	if res.MoraDetails != nil {
		t.Errorf("mora details must be empty for surface matches, got %v", res.MoraDetails)
	}
}

// Surface presence must win even when the reading would also match a
// different corpus token and a mora combination would succeed too.
func TestMatchToken_CascadePriority(t *testing.T) {
	t.Parallel()

	tokens := append(testTokens(),
		makeToken("蒼い", "アオイ", 2, 0), // same reading as 青い at line 0
	)
	eng := NewEngine(BuildIndex(tokens), defaultMaxMora, nil)

	res := eng.MatchToken("青い", "アオイ", "形容詞")
	if res.Type != domain.MatchExactSurface {
		t.Fatalf("type = %s, want %s", res.Type, domain.MatchExactSurface)
	}
	if want := testCorpusID + "_0_4"; res.MatchedTokenIDs[0] != want {
		t.Errorf("matched id = %s, want %s", res.MatchedTokenIDs[0], want)
	}
}

func TestMatchToken_ExactReading(t *testing.T) {
	t.Parallel()
	eng := newTestEngine(t)

	res := eng.MatchToken("蒼い", "アオイ", "形容詞")
	if res.Type != domain.MatchExactReading {
		t.Fatalf("type = %s, want %s", res.Type, domain.MatchExactReading)
	}
	if want := testCorpusID + "_0_4"; res.MatchedTokenIDs[0] != want {
		t.Errorf("matched id = %s, want %s", res.MatchedTokenIDs[0], want)
	}
}

func TestMatchToken_NormalizesHiraganaInput(t *testing.T) {
	t.Parallel()
	eng := newTestEngine(t)

	res := eng.MatchToken("蒼い", "あおい", "形容詞")
	if res.Type != domain.MatchExactReading {
		t.Errorf("hiragana input reading must match after normalization, got %s", res.Type)
	}
	if res.InputReading != "アオイ" {
		t.Errorf("stored input reading = %q, want normalized katakana", res.InputReading)
	}
}

func TestMatchToken_MoraCombination(t *testing.T) {
	t.Parallel()
	eng := newTestEngine(t)

	// ノラ: ノ from の (0,1), ラ from 桜 (1,0) at mora position 2.
	res := eng.MatchToken("野良", "ノラ", "名詞")
	if res.Type != domain.MatchMoraCombination {
		t.Fatalf("type = %s, want %s", res.Type, domain.MatchMoraCombination)
	}
	if len(res.MatchedTokenIDs) != 0 {
		t.Errorf("matched ids must be empty for mora combinations, got %v", res.MatchedTokenIDs)
	}
	want := []domain.MoraDetail{
		{Mora: "ノ", SourceTokenID: testCorpusID + "_0_1", MoraIndex: 0},
		{Mora: "ラ", SourceTokenID: testCorpusID + "_1_0", MoraIndex: 2},
	}
	if !reflect.DeepEqual(res.MoraDetails, want) {
		t.Errorf("mora details = %v, want %v", res.MoraDetails, want)
	}
}

// A span filled early wins over the later single-mora chain: サクラ is
// covered by 桜's entire reading as one block, ガ by a single mora.
func TestMatchToken_MoraCombination_SpanBlockWins(t *testing.T) {
	t.Parallel()
	eng := newTestEngine(t)

	res := eng.MatchToken("桜賀", "サクラガ", "名詞")
	if res.Type != domain.MatchMoraCombination {
		t.Fatalf("type = %s, want %s", res.Type, domain.MatchMoraCombination)
	}
	sakuraID := testCorpusID + "_1_0"
	gaID := testCorpusID + "_1_1"
	want := []domain.MoraDetail{
		{Mora: "サ", SourceTokenID: sakuraID, MoraIndex: 0},
		{Mora: "ク", SourceTokenID: sakuraID, MoraIndex: 1},
		{Mora: "ラ", SourceTokenID: sakuraID, MoraIndex: 2},
		{Mora: "ガ", SourceTokenID: gaID, MoraIndex: 0},
	}
	if !reflect.DeepEqual(res.MoraDetails, want) {
		t.Errorf("mora details = %v, want %v", res.MoraDetails, want)
	}
}

// Provenance integrity: concatenated provenance moras reproduce the
// normalized input reading exactly.
func TestMatchToken_MoraProvenanceIntegrity(t *testing.T) {
	t.Parallel()
	eng := newTestEngine(t)

	readings := []string{"ノラ", "サクラガ", "イルカ", "テラス"}
	for _, reading := range readings {
		res := eng.MatchToken("х", reading, "名詞")
		if res.Type != domain.MatchMoraCombination {
			continue
		}
		if got := res.MoraReading(); got != reading {
			t.Errorf("provenance of %q reassembles to %q", reading, got)
		}
		if len(res.MoraDetails) != len(domain.SplitMoras(reading)) {
			t.Errorf("%q: one provenance entry per mora expected", reading)
		}
	}
}

func TestMatchToken_NoMatch(t *testing.T) {
	t.Parallel()
	eng := newTestEngine(t)

	res := eng.MatchToken("パン", "パン", "名詞")
	if res.Type != domain.MatchNone {
		t.Fatalf("type = %s, want %s", res.Type, domain.MatchNone)
	}
	if len(res.MatchedTokenIDs) != 0 || len(res.MoraDetails) != 0 {
		t.Error("no_match must carry no matched material")
	}
}

func TestMatchToken_EmptyReading(t *testing.T) {
	t.Parallel()
	eng := newTestEngine(t)

	res := eng.MatchToken("??", "", "記号")
	if res.Type != domain.MatchNone {
		t.Errorf("empty reading must short-circuit to no_match, got %s", res.Type)
	}
}

// With the cap below the input's mora count the combination step must
// reject before touching the mora index at all.
func TestMatchToken_MoraCapSkipsLookups(t *testing.T) {
	t.Parallel()

	mock := &tokenIndexMock{
		FindBySurfaceFunc: func(string) []*domain.LyricToken { return nil },
		FindByReadingFunc: func(string) []*domain.LyricToken { return nil },
	}
	eng := NewEngine(mock, 2, nil)

	res := eng.MatchToken("青い", "アオイ", "形容詞") // 3 moras > cap 2
	if res.Type != domain.MatchNone {
		t.Fatalf("type = %s, want %s", res.Type, domain.MatchNone)
	}
	if n := len(mock.HasMoraCalls()); n != 0 {
		t.Errorf("HasMora called %d times, want 0", n)
	}
	if n := len(mock.FindByMoraCalls()); n != 0 {
		t.Errorf("FindByMora called %d times, want 0", n)
	}
}

// One absent mora aborts the search before any DP lookups run.
func TestMatchToken_FastFailOnAbsentMora(t *testing.T) {
	t.Parallel()

	idx := BuildIndex(testTokens())
	mock := &tokenIndexMock{
		FindBySurfaceFunc: func(string) []*domain.LyricToken { return nil },
		FindByReadingFunc: func(string) []*domain.LyricToken { return nil },
		HasMoraFunc:       idx.HasMora,
	}
	eng := NewEngine(mock, defaultMaxMora, nil)

	res := eng.MatchToken("パンダ", "パンダ", "名詞") // パ is not in the corpus
	if res.Type != domain.MatchNone {
		t.Fatalf("type = %s, want %s", res.Type, domain.MatchNone)
	}
	if n := len(mock.FindByMoraCalls()); n != 0 {
		t.Errorf("FindByMora called %d times after fast fail, want 0", n)
	}
}

func TestMatchToken_Deterministic(t *testing.T) {
	t.Parallel()
	eng := newTestEngine(t)

	inputs := [][3]string{
		{"東京", "トウキョウ", "名詞"},
		{"蒼い", "アオイ", "形容詞"},
		{"野良", "ノラ", "名詞"},
		{"パン", "パン", "名詞"},
	}
	for _, in := range inputs {
		first := eng.MatchToken(in[0], in[1], in[2])
		for range 5 {
			if got := eng.MatchToken(in[0], in[1], in[2]); !reflect.DeepEqual(got, first) {
				t.Fatalf("non-deterministic result for %q: %v vs %v", in[0], got, first)
			}
		}
	}
}

// ---------------------------------------------------------------------------
// Similarity fallback
// ---------------------------------------------------------------------------

type fakeSimilarity struct {
	similar string
	score   float64
	ok      bool
	calls   int
}

func (f *fakeSimilarity) MostSimilar(word string, candidates []string) (string, float64, bool) {
	f.calls++
	return f.similar, f.score, f.ok
}

func TestMatchToken_SimilarSurfaceFallback(t *testing.T) {
	t.Parallel()

	sim := &fakeSimilarity{similar: "東京", score: 0.8, ok: true}
	eng := NewEngine(BuildIndex(testTokens()), defaultMaxMora, sim)

	res := eng.MatchToken("京都府", "ペペペ", "名詞") // nothing exact, ペ absent
	if res.Type != domain.MatchSimilarSurface {
		t.Fatalf("type = %s, want %s", res.Type, domain.MatchSimilarSurface)
	}
	if res.SimilarWord != "東京" || res.SimilarityScore != 0.8 {
		t.Errorf("similar word/score = %q/%v", res.SimilarWord, res.SimilarityScore)
	}
	if want := testCorpusID + "_0_0"; len(res.MatchedTokenIDs) != 1 || res.MatchedTokenIDs[0] != want {
		t.Errorf("matched ids = %v, want [%s]", res.MatchedTokenIDs, want)
	}
	if res.InputSurface != "京都府" || res.InputReading != "ペペペ" {
		t.Errorf("input fields must stay the original token, got %q/%q", res.InputSurface, res.InputReading)
	}
}

func TestMatchToken_SimilarityNotConsultedForFunctionWords(t *testing.T) {
	t.Parallel()

	sim := &fakeSimilarity{similar: "東京", score: 0.9, ok: true}
	eng := NewEngine(BuildIndex(testTokens()), defaultMaxMora, sim)

	res := eng.MatchToken("へ", "ペ", "助詞")
	if res.Type != domain.MatchNone {
		t.Fatalf("type = %s, want %s", res.Type, domain.MatchNone)
	}
	if sim.calls != 0 {
		t.Errorf("provider consulted %d times for a function word, want 0", sim.calls)
	}
}

func TestMatchToken_SimilarityBelowThresholdFallsThrough(t *testing.T) {
	t.Parallel()

	sim := &fakeSimilarity{ok: false}
	eng := NewEngine(BuildIndex(testTokens()), defaultMaxMora, sim)

	res := eng.MatchToken("京都府", "ペペペ", "名詞")
	if res.Type != domain.MatchNone {
		t.Errorf("type = %s, want %s", res.Type, domain.MatchNone)
	}
	if sim.calls == 0 {
		t.Error("provider should have been consulted")
	}
}
