package driven

import (
	"context"

	"github.com/google/uuid"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
)

// SessionStore handles sync session persistence (PostgreSQL)
type SessionStore interface {
	// Create persists a newly started session
	Create(ctx context.Context, session *domain.SyncSession) error

	// Update persists the session's current counters and state
	Update(ctx context.Context, session *domain.SyncSession) error

	// Get retrieves a session by id
	Get(ctx context.Context, id uuid.UUID) (*domain.SyncSession, error)

	// ActiveByTenant lists a tenant's non-terminal sessions
	ActiveByTenant(ctx context.Context, tenantID int64) ([]*domain.SyncSession, error)
}

// SessionErrorStore is the append-only per-record error ledger, keyed by
// session id. Keeping it outside the session aggregate bounds the
// aggregate's memory footprint for long-running sessions.
type SessionErrorStore interface {
	// Append adds error entries in batch order
	Append(ctx context.Context, sessionID uuid.UUID, errs []domain.RecordError) error

	// List reads a page of the ledger in insertion order
	List(ctx context.Context, sessionID uuid.UUID, offset, limit int) ([]domain.RecordError, error)

	// Count returns the ledger size for a session
	Count(ctx context.Context, sessionID uuid.UUID) (int, error)
}
