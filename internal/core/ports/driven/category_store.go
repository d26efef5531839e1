package driven

import (
	"context"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
)

// CategoryStore handles category persistence (PostgreSQL)
type CategoryStore interface {
	// CheckExistence reports, for every requested code, whether a
	// category with that code exists
	CheckExistence(ctx context.Context, codes []int) (map[int]bool, error)

	// Create persists a single category; the store assigns its id
	Create(ctx context.Context, category *domain.Category) error

	// UpdateNames refreshes the display name of existing categories,
	// keyed by code
	UpdateNames(ctx context.Context, names map[int]string) error

	// FetchByCodes retrieves existing categories by code
	FetchByCodes(ctx context.Context, codes []int) ([]*domain.Category, error)
}
