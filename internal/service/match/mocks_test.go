package match

import (
	"context"
	"sync"

	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

type corpusRepoMock struct {
	GetByIDFunc func(ctx context.Context, id string) (*domain.LyricsCorpus, error)
}

func (m *corpusRepoMock) GetByID(ctx context.Context, id string) (*domain.LyricsCorpus, error) {
	return m.GetByIDFunc(ctx, id)
}

type tokenRepoMock struct {
	ListByCorpusFunc func(ctx context.Context, corpusID string) ([]*domain.LyricToken, error)
}

func (m *tokenRepoMock) ListByCorpus(ctx context.Context, corpusID string) ([]*domain.LyricToken, error) {
	return m.ListByCorpusFunc(ctx, corpusID)
}

type runRepoMock struct {
	SaveFunc func(ctx context.Context, run *domain.MatchRun) error

	calls struct {
		Save []*domain.MatchRun
	}
	lock sync.RWMutex
}

func (m *runRepoMock) Save(ctx context.Context, run *domain.MatchRun) error {
	m.lock.Lock()
	m.calls.Save = append(m.calls.Save, run)
	m.lock.Unlock()
	return m.SaveFunc(ctx, run)
}

func (m *runRepoMock) SaveCalls() []*domain.MatchRun {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Save
}

type tokenizerMock struct {
	TokenizeFunc func(ctx context.Context, text string) ([]domain.TokenData, error)
}

func (m *tokenizerMock) Tokenize(ctx context.Context, text string) ([]domain.TokenData, error) {
	return m.TokenizeFunc(ctx, text)
}

type similarityMock struct {
	MostSimilarFunc func(word string, candidates []string) (string, float64, bool)

	calls struct {
		MostSimilar []string
	}
	lock sync.RWMutex
}

func (m *similarityMock) MostSimilar(word string, candidates []string) (string, float64, bool) {
	m.lock.Lock()
	m.calls.MostSimilar = append(m.calls.MostSimilar, word)
	m.lock.Unlock()
	return m.MostSimilarFunc(word, candidates)
}

func (m *similarityMock) MostSimilarCalls() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.MostSimilar
}

type txManagerMock struct{}

func (txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
