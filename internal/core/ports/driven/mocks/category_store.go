package mocks

import (
	"context"
	"sync"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
)

// MockCategoryStore is a mock implementation of CategoryStore for testing
type MockCategoryStore struct {
	mu         sync.RWMutex
	byCode     map[int]*domain.Category
	nextID     int64
	nameCalls  int
	checkCalls int

	CheckErr     error
	CreateErrFor map[int]error
	UpdateErr    error
}

// NewMockCategoryStore creates a new MockCategoryStore
func NewMockCategoryStore() *MockCategoryStore {
	return &MockCategoryStore{
		byCode: make(map[int]*domain.Category),
		nextID: 1,
	}
}

func (m *MockCategoryStore) CheckExistence(ctx context.Context, codes []int) (map[int]bool, error) {
	if m.CheckErr != nil {
		return nil, m.CheckErr
	}
	m.mu.Lock()
	m.checkCalls++
	m.mu.Unlock()
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make(map[int]bool, len(codes))
	for _, code := range codes {
		_, ok := m.byCode[code]
		result[code] = ok
	}
	return result, nil
}

func (m *MockCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if err := m.CreateErrFor[category.Code]; err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byCode[category.Code]; ok {
		return domain.ErrAlreadyExists
	}
	category.ID = m.nextID
	m.nextID++
	m.byCode[category.Code] = category
	return nil
}

func (m *MockCategoryStore) UpdateNames(ctx context.Context, names map[int]string) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nameCalls++
	for code, name := range names {
		if c, ok := m.byCode[code]; ok {
			c.Name = name
		}
	}
	return nil
}

func (m *MockCategoryStore) FetchByCodes(ctx context.Context, codes []int) ([]*domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Category
	for _, code := range codes {
		if c, ok := m.byCode[code]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}

// Helper methods for testing

func (m *MockCategoryStore) Add(c *domain.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == 0 {
		c.ID = m.nextID
		m.nextID++
	}
	m.byCode[c.Code] = c
}

func (m *MockCategoryStore) Get(code int) *domain.Category {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byCode[code]
}

func (m *MockCategoryStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byCode)
}
