package lyrics

import (
	"context"
	"sync"

	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

// corpusRepoMock is a mock implementation of corpusRepo.
type corpusRepoMock struct {
	CreateFunc           func(ctx context.Context, c *domain.LyricsCorpus) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.LyricsCorpus, error)
	GetByContentHashFunc func(ctx context.Context, hash string) (*domain.LyricsCorpus, error)
	ListFunc             func(ctx context.Context, f domain.CorpusFilter) ([]*domain.LyricsCorpus, error)
	DeleteFunc           func(ctx context.Context, id string) error

	calls struct {
		Create           []*domain.LyricsCorpus
		GetByContentHash []string
		Delete           []string
	}
	lock sync.RWMutex
}

func (m *corpusRepoMock) Create(ctx context.Context, c *domain.LyricsCorpus) error {
	m.lock.Lock()
	m.calls.Create = append(m.calls.Create, c)
	m.lock.Unlock()
	return m.CreateFunc(ctx, c)
}

func (m *corpusRepoMock) GetByID(ctx context.Context, id string) (*domain.LyricsCorpus, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *corpusRepoMock) GetByContentHash(ctx context.Context, hash string) (*domain.LyricsCorpus, error) {
	m.lock.Lock()
	m.calls.GetByContentHash = append(m.calls.GetByContentHash, hash)
	m.lock.Unlock()
	return m.GetByContentHashFunc(ctx, hash)
}

func (m *corpusRepoMock) List(ctx context.Context, f domain.CorpusFilter) ([]*domain.LyricsCorpus, error) {
	return m.ListFunc(ctx, f)
}

func (m *corpusRepoMock) Delete(ctx context.Context, id string) error {
	m.lock.Lock()
	m.calls.Delete = append(m.calls.Delete, id)
	m.lock.Unlock()
	return m.DeleteFunc(ctx, id)
}

func (m *corpusRepoMock) CreateCalls() []*domain.LyricsCorpus {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Create
}

// tokenRepoMock is a mock implementation of tokenRepo.
type tokenRepoMock struct {
	BatchSaveFunc      func(ctx context.Context, tokens []*domain.LyricToken) error
	CountByCorpusFunc  func(ctx context.Context, corpusID string) (int, error)
	FirstSurfacesFunc  func(ctx context.Context, corpusID string, n int) ([]string, error)
	DeleteByCorpusFunc func(ctx context.Context, corpusID string) (int, error)

	calls struct {
		BatchSave [][]*domain.LyricToken
	}
	lock sync.RWMutex
}

func (m *tokenRepoMock) BatchSave(ctx context.Context, tokens []*domain.LyricToken) error {
	m.lock.Lock()
	m.calls.BatchSave = append(m.calls.BatchSave, tokens)
	m.lock.Unlock()
	return m.BatchSaveFunc(ctx, tokens)
}

func (m *tokenRepoMock) CountByCorpus(ctx context.Context, corpusID string) (int, error) {
	return m.CountByCorpusFunc(ctx, corpusID)
}

func (m *tokenRepoMock) FirstSurfaces(ctx context.Context, corpusID string, n int) ([]string, error) {
	return m.FirstSurfacesFunc(ctx, corpusID, n)
}

func (m *tokenRepoMock) DeleteByCorpus(ctx context.Context, corpusID string) (int, error) {
	return m.DeleteByCorpusFunc(ctx, corpusID)
}

func (m *tokenRepoMock) BatchSaveCalls() [][]*domain.LyricToken {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.BatchSave
}

// tokenizerMock is a mock implementation of tokenizerPort.
type tokenizerMock struct {
	TokenizeFunc func(ctx context.Context, text string) ([]domain.TokenData, error)

	calls struct {
		Tokenize []string
	}
	lock sync.RWMutex
}

func (m *tokenizerMock) Tokenize(ctx context.Context, text string) ([]domain.TokenData, error) {
	m.lock.Lock()
	m.calls.Tokenize = append(m.calls.Tokenize, text)
	m.lock.Unlock()
	return m.TokenizeFunc(ctx, text)
}

func (m *tokenizerMock) TokenizeCalls() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Tokenize
}

// txManagerMock runs the callback directly, without a transaction.
type txManagerMock struct{}

func (txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
