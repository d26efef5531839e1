package mocks

import (
	"context"
	"sync"
	"time"
)

// MockSessionLease is a mock implementation of SessionLease for testing
type MockSessionLease struct {
	mu   sync.Mutex
	held map[string]bool

	AcquireErr error
}

// NewMockSessionLease creates a new MockSessionLease
func NewMockSessionLease() *MockSessionLease {
	return &MockSessionLease{
		held: make(map[string]bool),
	}
}

func (m *MockSessionLease) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	if m.AcquireErr != nil {
		return false, m.AcquireErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[name] {
		return false, nil
	}
	m.held[name] = true
	return true, nil
}

func (m *MockSessionLease) Release(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, name)
	return nil
}

// Helper methods for testing

func (m *MockSessionLease) Held(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held[name]
}
