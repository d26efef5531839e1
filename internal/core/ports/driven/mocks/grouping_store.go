package mocks

import (
	"context"
	"sync"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
)

// MockGroupingStore is a mock implementation of GroupingStore for testing
type MockGroupingStore struct {
	mu        sync.RWMutex
	groupings map[int64]map[domain.GroupingKey]*domain.Grouping
	nextID    int64

	FetchErr  error
	CreateErr error
}

// NewMockGroupingStore creates a new MockGroupingStore
func NewMockGroupingStore() *MockGroupingStore {
	return &MockGroupingStore{
		groupings: make(map[int64]map[domain.GroupingKey]*domain.Grouping),
		nextID:    1,
	}
}

func (m *MockGroupingStore) FetchExisting(ctx context.Context, tenantID int64) ([]domain.GroupingKey, error) {
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []domain.GroupingKey
	for key := range m.groupings[tenantID] {
		keys = append(keys, key)
	}
	return keys, nil
}

func (m *MockGroupingStore) CreateBulk(ctx context.Context, groupings []*domain.Grouping) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range groupings {
		if m.groupings[g.TenantID] == nil {
			m.groupings[g.TenantID] = make(map[domain.GroupingKey]*domain.Grouping)
		}
		g.ID = m.nextID
		m.nextID++
		m.groupings[g.TenantID][domain.GroupingKey{Code: g.Code, Type: g.Type}] = g
	}
	return nil
}

// Helper methods for testing

func (m *MockGroupingStore) Has(tenantID int64, key domain.GroupingKey) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.groupings[tenantID][key]
	return ok
}

func (m *MockGroupingStore) Get(tenantID int64, key domain.GroupingKey) *domain.Grouping {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.groupings[tenantID][key]
}

func (m *MockGroupingStore) CountFor(tenantID int64) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.groupings[tenantID])
}
