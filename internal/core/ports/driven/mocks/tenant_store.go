package mocks

import (
	"context"
	"sync"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
)

// MockTenantStore is a mock implementation of TenantStore for testing
type MockTenantStore struct {
	mu      sync.RWMutex
	tenants map[int64]*domain.Tenant

	ExistErr error
}

// NewMockTenantStore creates a new MockTenantStore
func NewMockTenantStore() *MockTenantStore {
	return &MockTenantStore{
		tenants: make(map[int64]*domain.Tenant),
	}
}

func (m *MockTenantStore) Get(ctx context.Context, id int64) (*domain.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tenants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (m *MockTenantStore) Exist(ctx context.Context, ids []int64) (map[int64]bool, error) {
	if m.ExistErr != nil {
		return nil, m.ExistErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make(map[int64]bool, len(ids))
	for _, id := range ids {
		_, ok := m.tenants[id]
		result[id] = ok
	}
	return result, nil
}

// Helper methods for testing

func (m *MockTenantStore) Add(t *domain.Tenant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tenants[t.ID] = t
}
