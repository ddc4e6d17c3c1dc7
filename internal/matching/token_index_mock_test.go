package matching

import (
	"sync"

	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

var _ TokenIndex = &tokenIndexMock{}

type tokenIndexMock struct {
	FindBySurfaceFunc func(surface string) []*domain.LyricToken
	FindByReadingFunc func(reading string) []*domain.LyricToken
	FindByMoraFunc    func(m domain.Mora) []*domain.LyricToken
	HasMoraFunc       func(m domain.Mora) bool
	SurfacesFunc      func() []string
	ReadingsFunc      func() []string

	calls struct {
		FindBySurface []struct{ Surface string }
		FindByReading []struct{ Reading string }
		FindByMora    []struct{ M domain.Mora }
		HasMora       []struct{ M domain.Mora }
		Surfaces      []struct{}
		Readings      []struct{}
	}
	lockFindBySurface sync.RWMutex
	lockFindByReading sync.RWMutex
	lockFindByMora    sync.RWMutex
	lockHasMora       sync.RWMutex
	lockSurfaces      sync.RWMutex
	lockReadings      sync.RWMutex
}

func (mock *tokenIndexMock) FindBySurface(surface string) []*domain.LyricToken {
	if mock.FindBySurfaceFunc == nil {
		panic("tokenIndexMock.FindBySurfaceFunc: method is nil but TokenIndex.FindBySurface was just called")
	}
	mock.lockFindBySurface.Lock()
	mock.calls.FindBySurface = append(mock.calls.FindBySurface, struct{ Surface string }{Surface: surface})
	mock.lockFindBySurface.Unlock()
	return mock.FindBySurfaceFunc(surface)
}

func (mock *tokenIndexMock) FindBySurfaceCalls() []struct{ Surface string } {
	mock.lockFindBySurface.RLock()
	calls := mock.calls.FindBySurface
	mock.lockFindBySurface.RUnlock()
	return calls
}

func (mock *tokenIndexMock) FindByReading(reading string) []*domain.LyricToken {
	if mock.FindByReadingFunc == nil {
		panic("tokenIndexMock.FindByReadingFunc: method is nil but TokenIndex.FindByReading was just called")
	}
	mock.lockFindByReading.Lock()
	mock.calls.FindByReading = append(mock.calls.FindByReading, struct{ Reading string }{Reading: reading})
	mock.lockFindByReading.Unlock()
	return mock.FindByReadingFunc(reading)
}

func (mock *tokenIndexMock) FindByReadingCalls() []struct{ Reading string } {
	mock.lockFindByReading.RLock()
	calls := mock.calls.FindByReading
	mock.lockFindByReading.RUnlock()
	return calls
}

func (mock *tokenIndexMock) FindByMora(m domain.Mora) []*domain.LyricToken {
	if mock.FindByMoraFunc == nil {
		panic("tokenIndexMock.FindByMoraFunc: method is nil but TokenIndex.FindByMora was just called")
	}
	mock.lockFindByMora.Lock()
	mock.calls.FindByMora = append(mock.calls.FindByMora, struct{ M domain.Mora }{M: m})
	mock.lockFindByMora.Unlock()
	return mock.FindByMoraFunc(m)
}

func (mock *tokenIndexMock) FindByMoraCalls() []struct{ M domain.Mora } {
	mock.lockFindByMora.RLock()
	calls := mock.calls.FindByMora
	mock.lockFindByMora.RUnlock()
	return calls
}

func (mock *tokenIndexMock) HasMora(m domain.Mora) bool {
	if mock.HasMoraFunc == nil {
		panic("tokenIndexMock.HasMoraFunc: method is nil but TokenIndex.HasMora was just called")
	}
	mock.lockHasMora.Lock()
	mock.calls.HasMora = append(mock.calls.HasMora, struct{ M domain.Mora }{M: m})
	mock.lockHasMora.Unlock()
	return mock.HasMoraFunc(m)
}

func (mock *tokenIndexMock) HasMoraCalls() []struct{ M domain.Mora } {
	mock.lockHasMora.RLock()
	calls := mock.calls.HasMora
	mock.lockHasMora.RUnlock()
	return calls
}

func (mock *tokenIndexMock) Surfaces() []string {
	if mock.SurfacesFunc == nil {
		panic("tokenIndexMock.SurfacesFunc: method is nil but TokenIndex.Surfaces was just called")
	}
	mock.lockSurfaces.Lock()
	mock.calls.Surfaces = append(mock.calls.Surfaces, struct{}{})
	mock.lockSurfaces.Unlock()
	return mock.SurfacesFunc()
}

func (mock *tokenIndexMock) SurfacesCalls() []struct{} {
	mock.lockSurfaces.RLock()
	calls := mock.calls.Surfaces
	mock.lockSurfaces.RUnlock()
	return calls
}

func (mock *tokenIndexMock) Readings() []string {
	if mock.ReadingsFunc == nil {
		panic("tokenIndexMock.ReadingsFunc: method is nil but TokenIndex.Readings was just called")
	}
	mock.lockReadings.Lock()
	mock.calls.Readings = append(mock.calls.Readings, struct{}{})
	mock.lockReadings.Unlock()
	return mock.ReadingsFunc()
}

func (mock *tokenIndexMock) ReadingsCalls() []struct{} {
	mock.lockReadings.RLock()
	calls := mock.calls.Readings
	mock.lockReadings.RUnlock()
	return calls
}
