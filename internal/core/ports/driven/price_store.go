package driven

import (
	"context"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
)

// PriceStore handles (product, list) price row persistence (PostgreSQL)
type PriceStore interface {
	// UpsertMany writes price rows with last-write-wins semantics and
	// reports how many were newly created vs overwritten
	UpsertMany(ctx context.Context, rows []domain.ProductPrice) (created, updated int, err error)
}
