package mocks

import (
	"context"
	"sync"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
)

// MockLogStore is a mock implementation of LogStore for testing
type MockLogStore struct {
	mu   sync.RWMutex
	logs []*domain.SyncLog

	CreateErr error
}

// NewMockLogStore creates a new MockLogStore
func NewMockLogStore() *MockLogStore {
	return &MockLogStore{}
}

func (m *MockLogStore) Create(ctx context.Context, entry *domain.SyncLog) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, entry)
	return nil
}

// Helper methods for testing

func (m *MockLogStore) Last() *domain.SyncLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.logs) == 0 {
		return nil
	}
	return m.logs[len(m.logs)-1]
}

func (m *MockLogStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.logs)
}
