package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
	"github.com/veloz-labs/catalogo-core/internal/core/ports/driven"
)

// StockReconciler applies the per-tenant stock entries carried by a
// batch. A record can carry stock for tenants other than the session's
// own (reselling), so every target tenant is verified before writing.
type StockReconciler struct {
	tenants driven.TenantStore
	stock   driven.StockStore
	logger  *slog.Logger
}

// NewStockReconciler creates a new StockReconciler.
func NewStockReconciler(tenants driven.TenantStore, stock driven.StockStore, logger *slog.Logger) *StockReconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StockReconciler{tenants: tenants, stock: stock, logger: logger}
}

// StockReport summarizes one stock pass.
type StockReport struct {
	EntriesApplied int
	TenantsUpdated int
	TenantsSkipped int
}

// Apply groups the records' stock entries by target tenant, drops
// entries aimed at invalid or unknown tenants, and writes each tenant's
// quantities in one call. A failed write skips that tenant only.
func (r *StockReconciler) Apply(ctx context.Context, records []*domain.SyncRecord, products map[string]*domain.Product) StockReport {
	var report StockReport

	byTenant := make(map[int64]map[int64]decimal.Decimal)
	for _, rec := range records {
		product, ok := products[strings.TrimSpace(rec.Code)]
		if !ok {
			continue
		}
		for _, entry := range rec.Stock {
			if entry.TenantID <= 0 {
				continue
			}
			quantities := byTenant[entry.TenantID]
			if quantities == nil {
				quantities = make(map[int64]decimal.Decimal)
				byTenant[entry.TenantID] = quantities
			}
			quantities[product.ID] = entry.Quantity
		}
	}
	if len(byTenant) == 0 {
		return report
	}

	ids := make([]int64, 0, len(byTenant))
	for id := range byTenant {
		ids = append(ids, id)
	}
	exists, err := r.tenants.Exist(ctx, ids)
	if err != nil {
		r.logger.Warn("failed to verify stock tenants, skipping stock pass", "error", err)
		report.TenantsSkipped = len(byTenant)
		return report
	}

	for tenantID, quantities := range byTenant {
		if !exists[tenantID] {
			r.logger.Warn("stock entry references unknown tenant", "tenant_id", tenantID, "entries", len(quantities))
			report.TenantsSkipped++
			continue
		}
		if err := r.stock.BulkUpdate(ctx, tenantID, quantities); err != nil {
			r.logger.Warn("failed to write stock for tenant", "tenant_id", tenantID, "error", err)
			report.TenantsSkipped++
			continue
		}
		report.TenantsUpdated++
		report.EntriesApplied += len(quantities)
	}
	return report
}
