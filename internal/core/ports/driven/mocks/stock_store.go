package mocks

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// MockStockStore is a mock implementation of StockStore for testing
type MockStockStore struct {
	mu    sync.RWMutex
	stock map[int64]map[int64]decimal.Decimal

	// FailTenants makes BulkUpdate fail for specific tenants.
	FailTenants map[int64]error
}

// NewMockStockStore creates a new MockStockStore
func NewMockStockStore() *MockStockStore {
	return &MockStockStore{
		stock: make(map[int64]map[int64]decimal.Decimal),
	}
}

func (m *MockStockStore) BulkUpdate(ctx context.Context, tenantID int64, quantities map[int64]decimal.Decimal) error {
	if err := m.FailTenants[tenantID]; err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stock[tenantID] == nil {
		m.stock[tenantID] = make(map[int64]decimal.Decimal)
	}
	for productID, qty := range quantities {
		m.stock[tenantID][productID] = qty
	}
	return nil
}

// Helper methods for testing

func (m *MockStockStore) Get(tenantID, productID int64) (decimal.Decimal, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	qty, ok := m.stock[tenantID][productID]
	return qty, ok
}

func (m *MockStockStore) CountFor(tenantID int64) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stock[tenantID])
}
