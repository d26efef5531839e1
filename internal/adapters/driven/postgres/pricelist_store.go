package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
	"github.com/veloz-labs/catalogo-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.PriceListStore = (*PriceListStore)(nil)

// PriceListStore implements driven.PriceListStore using PostgreSQL
type PriceListStore struct {
	db *DB
}

// NewPriceListStore creates a new PriceListStore
func NewPriceListStore(db *DB) *PriceListStore {
	return &PriceListStore{db: db}
}

// FetchAllActive lists every active price list
func (s *PriceListStore) FetchAllActive(ctx context.Context) ([]*domain.PriceList, error) {
	query := `SELECT id, code, name, active, is_default FROM price_lists WHERE active ORDER BY code`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []*domain.PriceList
	for rows.Next() {
		var l domain.PriceList
		if err := rows.Scan(&l.ID, &l.Code, &l.Name, &l.Active, &l.Default); err != nil {
			return nil, err
		}
		lists = append(lists, &l)
	}
	return lists, rows.Err()
}

// Create persists a price list
func (s *PriceListStore) Create(ctx context.Context, list *domain.PriceList) error {
	query := `
		INSERT INTO price_lists (code, name, active, is_default)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query, list.Code, list.Name, list.Active, list.Default).Scan(&list.ID)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyExists
	}
	return err
}

// DefaultID returns the id of the default list
func (s *PriceListStore) DefaultID(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM price_lists WHERE is_default`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	return id, err
}

// SetDefault marks the given list as the single default
func (s *PriceListStore) SetDefault(ctx context.Context, id int64) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE price_lists SET is_default = FALSE WHERE is_default`); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `UPDATE price_lists SET is_default = TRUE WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("%w: id %d", domain.ErrPriceListNotFound, id)
		}
		return nil
	})
}

// IDByCode resolves a list code to its id
func (s *PriceListStore) IDByCode(ctx context.Context, code string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM price_lists WHERE code = $1`, code).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	return id, err
}
