package postgres

import (
	"context"

	"github.com/lib/pq"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
	"github.com/veloz-labs/catalogo-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CategoryStore = (*CategoryStore)(nil)

// CategoryStore implements driven.CategoryStore using PostgreSQL
type CategoryStore struct {
	db *DB
}

// NewCategoryStore creates a new CategoryStore
func NewCategoryStore(db *DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// CheckExistence reports, for every requested code, whether a category
// with that code exists
func (s *CategoryStore) CheckExistence(ctx context.Context, codes []int) (map[int]bool, error) {
	result := make(map[int]bool, len(codes))
	if len(codes) == 0 {
		return result, nil
	}
	for _, code := range codes {
		result[code] = false
	}

	query := `SELECT code FROM categories WHERE code = ANY($1)`
	rows, err := s.db.QueryContext(ctx, query, pq.Array(codes))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var code int
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		result[code] = true
	}
	return result, rows.Err()
}

// Create persists a single category
func (s *CategoryStore) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (code, name)
		VALUES ($1, $2)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query, category.Code, category.Name).Scan(&category.ID)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyExists
	}
	return err
}

// UpdateNames refreshes the display name of existing categories
func (s *CategoryStore) UpdateNames(ctx context.Context, names map[int]string) error {
	if len(names) == 0 {
		return nil
	}

	codes := make([]int, 0, len(names))
	values := make([]string, 0, len(names))
	for code, name := range names {
		codes = append(codes, code)
		values = append(values, name)
	}

	// One statement: join the (code, name) pairs by array position.
	query := `
		UPDATE categories c
		SET name = v.name, updated_at = NOW()
		FROM (SELECT UNNEST($1::int[]) AS code, UNNEST($2::text[]) AS name) v
		WHERE c.code = v.code
	`
	_, err := s.db.ExecContext(ctx, query, pq.Array(codes), pq.Array(values))
	return err
}

// FetchByCodes retrieves existing categories by code
func (s *CategoryStore) FetchByCodes(ctx context.Context, codes []int) ([]*domain.Category, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	query := `SELECT id, code, name FROM categories WHERE code = ANY($1)`
	rows, err := s.db.QueryContext(ctx, query, pq.Array(codes))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Code, &c.Name); err != nil {
			return nil, err
		}
		result = append(result, &c)
	}
	return result, rows.Err()
}
