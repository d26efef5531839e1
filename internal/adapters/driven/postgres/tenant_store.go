package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
	"github.com/veloz-labs/catalogo-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TenantStore = (*TenantStore)(nil)

// TenantStore implements driven.TenantStore using PostgreSQL
type TenantStore struct {
	db *DB
}

// NewTenantStore creates a new TenantStore
func NewTenantStore(db *DB) *TenantStore {
	return &TenantStore{db: db}
}

// Get retrieves a tenant by id
func (s *TenantStore) Get(ctx context.Context, id int64) (*domain.Tenant, error) {
	query := `SELECT id, name, principal FROM tenants WHERE id = $1`

	var t domain.Tenant
	err := s.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Principal)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", domain.ErrTenantNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Exist reports, for every requested id, whether the tenant exists
func (s *TenantStore) Exist(ctx context.Context, ids []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	for _, id := range ids {
		result[id] = false
	}

	query := `SELECT id FROM tenants WHERE id = ANY($1)`
	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result[id] = true
	}
	return result, rows.Err()
}
