package mocks

import (
	"context"
	"sync"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
	"github.com/veloz-labs/catalogo-core/internal/core/ports/driven"
)

type productKey struct {
	tenantID int64
	code     string
}

// MockProductStore is a mock implementation of ProductStore for testing
type MockProductStore struct {
	mu       sync.RWMutex
	products map[productKey]*domain.Product
	nextID   int64

	FetchErr  error
	UpsertErr error
	// FailCodes simulates per-row store failures during BulkUpsert,
	// keyed by product code, with the failure message as value.
	FailCodes map[string]string
}

// NewMockProductStore creates a new MockProductStore
func NewMockProductStore() *MockProductStore {
	return &MockProductStore{
		products: make(map[productKey]*domain.Product),
		nextID:   1,
	}
}

func (m *MockProductStore) FetchByCodes(ctx context.Context, tenantID int64, codes []string) ([]*domain.Product, error) {
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Product
	for _, code := range codes {
		if p, ok := m.products[productKey{tenantID, code}]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *MockProductStore) BulkUpsert(ctx context.Context, creates, updates []*domain.Product) (*driven.UpsertReport, error) {
	if m.UpsertErr != nil {
		return nil, m.UpsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	report := &driven.UpsertReport{}
	for _, p := range creates {
		if msg, ok := m.FailCodes[p.Code]; ok {
			report.Failed++
			report.Errors = append(report.Errors, driven.UpsertError{Code: p.Code, Message: msg})
			continue
		}
		p.ID = m.nextID
		m.nextID++
		m.products[productKey{p.TenantID, p.Code}] = p
		report.Created++
	}
	for _, p := range updates {
		if msg, ok := m.FailCodes[p.Code]; ok {
			report.Failed++
			report.Errors = append(report.Errors, driven.UpsertError{Code: p.Code, Message: msg})
			continue
		}
		m.products[productKey{p.TenantID, p.Code}] = p
		report.Updated++
	}
	return report, nil
}

// Helper methods for testing

func (m *MockProductStore) Add(p *domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == 0 {
		p.ID = m.nextID
		m.nextID++
	}
	m.products[productKey{p.TenantID, p.Code}] = p
}

func (m *MockProductStore) Get(tenantID int64, code string) *domain.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.products[productKey{tenantID, code}]
}

func (m *MockProductStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.products)
}
