package mocks

import (
	"context"
	"sync"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
)

type priceKey struct {
	productID   int64
	priceListID int64
}

// MockPriceStore is a mock implementation of PriceStore for testing
type MockPriceStore struct {
	mu   sync.RWMutex
	rows map[priceKey]domain.ProductPrice

	UpsertErr error
	// FailListIDs makes UpsertMany fail when any row targets one of
	// these list ids.
	FailListIDs map[int64]error
}

// NewMockPriceStore creates a new MockPriceStore
func NewMockPriceStore() *MockPriceStore {
	return &MockPriceStore{
		rows: make(map[priceKey]domain.ProductPrice),
	}
}

func (m *MockPriceStore) UpsertMany(ctx context.Context, rows []domain.ProductPrice) (int, int, error) {
	if m.UpsertErr != nil {
		return 0, 0, m.UpsertErr
	}
	for _, r := range rows {
		if err := m.FailListIDs[r.PriceListID]; err != nil {
			return 0, 0, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var created, updated int
	for _, r := range rows {
		key := priceKey{r.ProductID, r.PriceListID}
		if _, ok := m.rows[key]; ok {
			updated++
		} else {
			created++
		}
		m.rows[key] = r
	}
	return created, updated, nil
}

// Helper methods for testing

func (m *MockPriceStore) Get(productID, priceListID int64) (domain.ProductPrice, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rows[priceKey{productID, priceListID}]
	return r, ok
}

func (m *MockPriceStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows)
}
