package postgres

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/veloz-labs/catalogo-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.StockStore = (*StockStore)(nil)

// StockStore implements driven.StockStore using PostgreSQL
type StockStore struct {
	db *DB
}

// NewStockStore creates a new StockStore
func NewStockStore(db *DB) *StockStore {
	return &StockStore{db: db}
}

// BulkUpdate writes stock quantities for one tenant, keyed by product id
func (s *StockStore) BulkUpdate(ctx context.Context, tenantID int64, quantities map[int64]decimal.Decimal) error {
	if len(quantities) == 0 {
		return nil
	}

	query := `
		INSERT INTO product_stock (product_id, tenant_id, quantity, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (product_id, tenant_id) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			updated_at = NOW()
	`
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		for productID, qty := range quantities {
			if _, err := tx.ExecContext(ctx, query, productID, tenantID, qty); err != nil {
				return err
			}
		}
		return nil
	})
}
