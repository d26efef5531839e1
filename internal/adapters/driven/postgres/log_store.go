package postgres

import (
	"context"
	"encoding/json"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
	"github.com/veloz-labs/catalogo-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.LogStore = (*LogStore)(nil)

// LogStore implements driven.LogStore using PostgreSQL
type LogStore struct {
	db *DB
}

// NewLogStore creates a new LogStore
func NewLogStore(db *DB) *LogStore {
	return &LogStore{db: db}
}

// Create persists the immutable audit snapshot of a finished session
func (s *LogStore) Create(ctx context.Context, entry *domain.SyncLog) error {
	errs := entry.Errors
	if errs == nil {
		errs = []domain.RecordError{}
	}
	errsJSON, err := json.Marshal(errs)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO sync_logs (
			id, session_id, tenant_id, processed, created, updated, errored,
			elapsed_millis, status, errors, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = s.db.ExecContext(ctx, query,
		entry.ID, entry.SessionID, entry.TenantID,
		entry.Processed, entry.Created, entry.Updated, entry.Errored,
		entry.ElapsedMillis, string(entry.Status), errsJSON, entry.CreatedAt,
	)
	return err
}
