package driven

import (
	"context"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
)

// PriceListStore handles price list persistence (PostgreSQL)
type PriceListStore interface {
	// FetchAllActive lists every active price list
	FetchAllActive(ctx context.Context) ([]*domain.PriceList, error)

	// Create persists a price list; the store assigns its id
	Create(ctx context.Context, list *domain.PriceList) error

	// DefaultID returns the id of the default list, or
	// domain.ErrNotFound when no list is marked default
	DefaultID(ctx context.Context) (int64, error)

	// SetDefault marks the given list as the single default
	SetDefault(ctx context.Context, id int64) error

	// IDByCode resolves a list code to its id, or domain.ErrNotFound
	IDByCode(ctx context.Context, code string) (int64, error)
}
