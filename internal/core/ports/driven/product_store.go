package driven

import (
	"context"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
)

// UpsertError describes one product that the store failed to persist
// during a bulk upsert.
type UpsertError struct {
	Code    string
	Message string
}

// UpsertReport summarizes one bulk upsert call.
type UpsertReport struct {
	Created int
	Updated int
	Failed  int
	Errors  []UpsertError
}

// ProductStore handles catalog product persistence (PostgreSQL)
type ProductStore interface {
	// FetchByCodes retrieves a tenant's existing products by normalized
	// code, in one query
	FetchByCodes(ctx context.Context, tenantID int64, codes []string) ([]*domain.Product, error)

	// BulkUpsert persists the create and update sets together. Per-row
	// failures are reported, not returned as an error; the store assigns
	// ids to created products. The update statement touches ERP-sourced
	// columns only.
	BulkUpsert(ctx context.Context, creates, updates []*domain.Product) (*UpsertReport, error)
}
