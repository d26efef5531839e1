package driven

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockStore handles per-tenant stock persistence (PostgreSQL)
type StockStore interface {
	// BulkUpdate writes stock quantities for one tenant, keyed by
	// product id
	BulkUpdate(ctx context.Context, tenantID int64, quantities map[int64]decimal.Decimal) error
}
