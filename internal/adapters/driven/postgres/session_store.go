package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
	"github.com/veloz-labs/catalogo-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SessionStore = (*SessionStore)(nil)
var _ driven.SessionErrorStore = (*SessionErrorStore)(nil)

// SessionStore implements driven.SessionStore using PostgreSQL
type SessionStore struct {
	db *DB
}

// NewSessionStore creates a new SessionStore
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db}
}

// Create persists a newly started session
func (s *SessionStore) Create(ctx context.Context, session *domain.SyncSession) error {
	query := `
		INSERT INTO sync_sessions (
			id, tenant_id, price_list_id, multi_list, started_by, state,
			expected_batches, batches_processed, total_records,
			records_created, records_updated, records_errored,
			processing_millis, started_at, ended_at, elapsed_millis
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := s.db.ExecContext(ctx, query,
		session.ID, session.TenantID, NullInt64(session.PriceListID),
		session.MultiList, session.StartedBy, string(session.State),
		session.ExpectedBatches, session.BatchesProcessed, session.TotalRecords,
		session.RecordsCreated, session.RecordsUpdated, session.RecordsErrored,
		session.ProcessingMillis, session.StartedAt, NullTime(session.EndedAt),
		session.ElapsedMillis,
	)
	return err
}

// Update persists the session's current counters and state
func (s *SessionStore) Update(ctx context.Context, session *domain.SyncSession) error {
	query := `
		UPDATE sync_sessions SET
			state = $2,
			batches_processed = $3,
			total_records = $4,
			records_created = $5,
			records_updated = $6,
			records_errored = $7,
			processing_millis = $8,
			ended_at = $9,
			elapsed_millis = $10
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		session.ID, string(session.State),
		session.BatchesProcessed, session.TotalRecords,
		session.RecordsCreated, session.RecordsUpdated, session.RecordsErrored,
		session.ProcessingMillis, NullTime(session.EndedAt), session.ElapsedMillis,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, session.ID)
	}
	return nil
}

const sessionColumns = `
	id, tenant_id, price_list_id, multi_list, started_by, state,
	expected_batches, batches_processed, total_records,
	records_created, records_updated, records_errored,
	processing_millis, started_at, ended_at, elapsed_millis
`

// Get retrieves a session by id
func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (*domain.SyncSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM sync_sessions WHERE id = $1`
	session, err := scanSession(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return session, err
}

// ActiveByTenant lists a tenant's non-terminal sessions
func (s *SessionStore) ActiveByTenant(ctx context.Context, tenantID int64) ([]*domain.SyncSession, error) {
	query := `SELECT ` + sessionColumns + `
		FROM sync_sessions
		WHERE tenant_id = $1 AND state = ANY($2)
		ORDER BY started_at`
	states := []string{string(domain.SessionStarted), string(domain.SessionProcessing)}
	rows, err := s.db.QueryContext(ctx, query, tenantID, pq.Array(states))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*domain.SyncSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func scanSession(row rowScanner) (*domain.SyncSession, error) {
	var session domain.SyncSession
	var priceListID sql.NullInt64
	var state string
	var endedAt sql.NullTime

	err := row.Scan(
		&session.ID, &session.TenantID, &priceListID, &session.MultiList,
		&session.StartedBy, &state,
		&session.ExpectedBatches, &session.BatchesProcessed, &session.TotalRecords,
		&session.RecordsCreated, &session.RecordsUpdated, &session.RecordsErrored,
		&session.ProcessingMillis, &session.StartedAt, &endedAt, &session.ElapsedMillis,
	)
	if err != nil {
		return nil, err
	}

	session.PriceListID = Int64Ptr(priceListID)
	session.State = domain.SessionState(state)
	session.EndedAt = TimePtr(endedAt)
	return &session, nil
}

// SessionErrorStore implements driven.SessionErrorStore using PostgreSQL
type SessionErrorStore struct {
	db *DB
}

// NewSessionErrorStore creates a new SessionErrorStore
func NewSessionErrorStore(db *DB) *SessionErrorStore {
	return &SessionErrorStore{db: db}
}

// Append adds error entries in batch order
func (s *SessionErrorStore) Append(ctx context.Context, sessionID uuid.UUID, errs []domain.RecordError) error {
	if len(errs) == 0 {
		return nil
	}

	query := `
		INSERT INTO sync_session_errors (session_id, code, description, category_code, kind, message, record_index)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		for _, e := range errs {
			_, err := tx.ExecContext(ctx, query,
				sessionID, e.Code, e.Description, NullInt32(e.CategoryCode),
				string(e.Kind), e.Message, e.Index,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// List reads a page of the ledger in insertion order
func (s *SessionErrorStore) List(ctx context.Context, sessionID uuid.UUID, offset, limit int) ([]domain.RecordError, error) {
	query := `
		SELECT code, description, category_code, kind, message, record_index
		FROM sync_session_errors
		WHERE session_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3
	`
	rows, err := s.db.QueryContext(ctx, query, sessionID, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errs []domain.RecordError
	for rows.Next() {
		var e domain.RecordError
		var categoryCode sql.NullInt32
		var kind string
		if err := rows.Scan(&e.Code, &e.Description, &categoryCode, &kind, &e.Message, &e.Index); err != nil {
			return nil, err
		}
		e.CategoryCode = IntPtr(categoryCode)
		e.Kind = domain.ErrorKind(kind)
		errs = append(errs, e)
	}
	return errs, rows.Err()
}

// Count returns the ledger size for a session
func (s *SessionErrorStore) Count(ctx context.Context, sessionID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sync_session_errors WHERE session_id = $1`, sessionID).Scan(&count)
	return count, err
}
