package query

import (
	"context"
	"sync"

	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

type runRepoMock struct {
	GetByIDFunc func(ctx context.Context, id string) (*domain.MatchRun, error)
	ListFunc    func(ctx context.Context, limit int) ([]domain.RunSummary, error)
	DeleteFunc  func(ctx context.Context, id string) error

	calls struct {
		Delete []string
	}
	lock sync.RWMutex
}

func (m *runRepoMock) GetByID(ctx context.Context, id string) (*domain.MatchRun, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *runRepoMock) List(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	return m.ListFunc(ctx, limit)
}

func (m *runRepoMock) Delete(ctx context.Context, id string) error {
	m.lock.Lock()
	m.calls.Delete = append(m.calls.Delete, id)
	m.lock.Unlock()
	return m.DeleteFunc(ctx, id)
}

func (m *runRepoMock) DeleteCalls() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Delete
}

type tokenRepoMock struct {
	ListByCorpusFunc func(ctx context.Context, corpusID string) ([]*domain.LyricToken, error)
}

func (m *tokenRepoMock) ListByCorpus(ctx context.Context, corpusID string) ([]*domain.LyricToken, error) {
	return m.ListByCorpusFunc(ctx, corpusID)
}

type txManagerMock struct{}

func (txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
