package mocks

import (
	"context"
	"sync"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
)

// MockPriceListStore is a mock implementation of PriceListStore for testing
type MockPriceListStore struct {
	mu     sync.RWMutex
	byCode map[string]*domain.PriceList
	nextID int64

	FetchErr      error
	CreateErrFor  map[string]error
	SetDefaultErr error
}

// NewMockPriceListStore creates a new MockPriceListStore
func NewMockPriceListStore() *MockPriceListStore {
	return &MockPriceListStore{
		byCode: make(map[string]*domain.PriceList),
		nextID: 1,
	}
}

func (m *MockPriceListStore) FetchAllActive(ctx context.Context) ([]*domain.PriceList, error) {
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.PriceList
	for _, l := range m.byCode {
		if l.Active {
			result = append(result, l)
		}
	}
	return result, nil
}

func (m *MockPriceListStore) Create(ctx context.Context, list *domain.PriceList) error {
	if err := m.CreateErrFor[list.Code]; err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byCode[list.Code]; ok {
		return domain.ErrAlreadyExists
	}
	list.ID = m.nextID
	m.nextID++
	m.byCode[list.Code] = list
	return nil
}

func (m *MockPriceListStore) DefaultID(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.byCode {
		if l.Default {
			return l.ID, nil
		}
	}
	return 0, domain.ErrNotFound
}

func (m *MockPriceListStore) SetDefault(ctx context.Context, id int64) error {
	if m.SetDefaultErr != nil {
		return m.SetDefaultErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.byCode {
		l.Default = l.ID == id
	}
	return nil
}

func (m *MockPriceListStore) IDByCode(ctx context.Context, code string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.byCode[code]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return l.ID, nil
}

// Helper methods for testing

func (m *MockPriceListStore) Add(l *domain.PriceList) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l.ID == 0 {
		l.ID = m.nextID
		m.nextID++
	}
	m.byCode[l.Code] = l
}

func (m *MockPriceListStore) Get(code string) *domain.PriceList {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byCode[code]
}

func (m *MockPriceListStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byCode)
}
