package postgres

import (
	"context"
	"database/sql"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
	"github.com/veloz-labs/catalogo-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.PriceStore = (*PriceStore)(nil)

// PriceStore implements driven.PriceStore using PostgreSQL
type PriceStore struct {
	db *DB
}

// NewPriceStore creates a new PriceStore
func NewPriceStore(db *DB) *PriceStore {
	return &PriceStore{db: db}
}

// UpsertMany writes price rows with last-write-wins semantics and reports
// how many were newly created vs overwritten.
func (s *PriceStore) UpsertMany(ctx context.Context, rows []domain.ProductPrice) (int, int, error) {
	if len(rows) == 0 {
		return 0, 0, nil
	}

	query := `
		INSERT INTO product_prices (product_id, price_list_id, price, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (product_id, price_list_id) DO UPDATE SET
			price = EXCLUDED.price,
			updated_at = NOW()
		RETURNING (xmax = 0)
	`
	var created, updated int
	err := s.db.Transaction(ctx, func(tx *sql.Tx) error {
		for _, r := range rows {
			// xmax = 0 only for freshly inserted rows.
			var inserted bool
			if err := tx.QueryRowContext(ctx, query, r.ProductID, r.PriceListID, r.Price).Scan(&inserted); err != nil {
				return err
			}
			if inserted {
				created++
			} else {
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return created, updated, nil
}
