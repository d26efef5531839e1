package driving

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
)

// StartSessionInput carries what a caller declares when opening a
// synchronization run.
type StartSessionInput struct {
	TenantID        int64
	ExpectedBatches int
	StartedBy       string

	// PriceListCode binds the session to one list (single-list mode).
	// Nil, or MultiList true, means price-list association is per
	// record.
	PriceListCode *string
	MultiList     bool
}

// SessionStatus is the read model exposed to callers polling a session.
type SessionStatus struct {
	ID    uuid.UUID           `json:"id"`
	State domain.SessionState `json:"state"`

	Progress domain.Progress `json:"progress"`

	TotalRecords   int `json:"total_records"`
	RecordsCreated int `json:"records_created"`
	RecordsUpdated int `json:"records_updated"`
	RecordsErrored int `json:"records_errored"`
	ErrorCount     int `json:"error_count"`

	SuccessRate float64 `json:"success_rate"`
	Throughput  float64 `json:"throughput_records_per_sec"`

	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// SyncService is the bulk catalog synchronization engine as seen by a
// transport-layer caller. Batches of one session must be submitted
// sequentially.
type SyncService interface {
	// StartSession opens a run for a tenant. An already-active session
	// for the same tenant is logged, not refused.
	StartSession(ctx context.Context, in StartSessionInput) (*domain.SyncSession, error)

	// ProcessBatch reconciles one batch of ERP records against the
	// catalog. With stockOnly set, only per-tenant stock of
	// pre-existing products is updated.
	ProcessBatch(ctx context.Context, sessionID uuid.UUID, batchNumber int, records []*domain.SyncRecord, stockOnly bool) (*domain.BatchResult, error)

	// FinishSession moves the session to its terminal state and emits
	// the immutable sync log.
	FinishSession(ctx context.Context, sessionID uuid.UUID, outcome domain.Outcome) (*domain.SyncLog, error)

	// SessionStatus returns progress and aggregate metrics
	SessionStatus(ctx context.Context, sessionID uuid.UUID) (*SessionStatus, error)
}
