package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
)

// MockSessionStore is a mock implementation of SessionStore for testing
type MockSessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.SyncSession

	CreateErr error
	UpdateErr error
}

// NewMockSessionStore creates a new MockSessionStore
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{
		sessions: make(map[uuid.UUID]*domain.SyncSession),
	}
}

func (m *MockSessionStore) Create(ctx context.Context, session *domain.SyncSession) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return nil
}

func (m *MockSessionStore) Update(ctx context.Context, session *domain.SyncSession) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[session.ID]; !ok {
		return domain.ErrNotFound
	}
	m.sessions[session.ID] = session
	return nil
}

func (m *MockSessionStore) Get(ctx context.Context, id uuid.UUID) (*domain.SyncSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *MockSessionStore) ActiveByTenant(ctx context.Context, tenantID int64) ([]*domain.SyncSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.SyncSession
	for _, s := range m.sessions {
		if s.TenantID == tenantID && s.Active() {
			result = append(result, s)
		}
	}
	return result, nil
}

// Helper methods for testing

func (m *MockSessionStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// MockSessionErrorStore is a mock implementation of SessionErrorStore for testing
type MockSessionErrorStore struct {
	mu      sync.RWMutex
	ledgers map[uuid.UUID][]domain.RecordError

	AppendErr error
}

// NewMockSessionErrorStore creates a new MockSessionErrorStore
func NewMockSessionErrorStore() *MockSessionErrorStore {
	return &MockSessionErrorStore{
		ledgers: make(map[uuid.UUID][]domain.RecordError),
	}
}

func (m *MockSessionErrorStore) Append(ctx context.Context, sessionID uuid.UUID, errs []domain.RecordError) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledgers[sessionID] = append(m.ledgers[sessionID], errs...)
	return nil
}

func (m *MockSessionErrorStore) List(ctx context.Context, sessionID uuid.UUID, offset, limit int) ([]domain.RecordError, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ledger := m.ledgers[sessionID]
	if offset >= len(ledger) {
		return nil, nil
	}
	end := len(ledger)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	page := make([]domain.RecordError, end-offset)
	copy(page, ledger[offset:end])
	return page, nil
}

func (m *MockSessionErrorStore) Count(ctx context.Context, sessionID uuid.UUID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ledgers[sessionID]), nil
}
