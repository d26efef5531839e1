package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
	"github.com/veloz-labs/catalogo-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.GroupingStore = (*GroupingStore)(nil)

// GroupingStore implements driven.GroupingStore using PostgreSQL
type GroupingStore struct {
	db *DB
}

// NewGroupingStore creates a new GroupingStore
func NewGroupingStore(db *DB) *GroupingStore {
	return &GroupingStore{db: db}
}

// FetchExisting lists the (code, type) pairs a tenant already has
func (s *GroupingStore) FetchExisting(ctx context.Context, tenantID int64) ([]domain.GroupingKey, error) {
	query := `SELECT code, type FROM groupings WHERE tenant_id = $1`
	rows, err := s.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []domain.GroupingKey
	for rows.Next() {
		var key domain.GroupingKey
		if err := rows.Scan(&key.Code, &key.Type); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// CreateBulk inserts the given groupings in one transaction. Conflicting
// pairs are left untouched.
func (s *GroupingStore) CreateBulk(ctx context.Context, groupings []*domain.Grouping) error {
	if len(groupings) == 0 {
		return nil
	}

	query := `
		INSERT INTO groupings (tenant_id, code, type, name, description)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tenant_id, code, type) DO NOTHING
		RETURNING id
	`
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		for _, g := range groupings {
			err := tx.QueryRowContext(ctx, query, g.TenantID, g.Code, g.Type, g.Name, g.Description).Scan(&g.ID)
			// DO NOTHING yields no row when the pair already exists.
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return err
			}
		}
		return nil
	})
}
