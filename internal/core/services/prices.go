package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
	"github.com/veloz-labs/catalogo-core/internal/core/ports/driven"
)

// PriceApplier writes the per-list price rows for a reconciled batch.
// Pricing is best-effort relative to the products themselves: a failed
// price write never undoes a product upsert.
type PriceApplier struct {
	prices driven.PriceStore
	lists  *PriceListProvisioner
	logger *slog.Logger
}

// NewPriceApplier creates a new PriceApplier.
func NewPriceApplier(prices driven.PriceStore, lists *PriceListProvisioner, logger *slog.Logger) *PriceApplier {
	if logger == nil {
		logger = slog.Default()
	}
	return &PriceApplier{prices: prices, lists: lists, logger: logger}
}

// ApplySingle writes each record's flat price onto the session's target
// list. Zero prices are skipped; a failed write is logged, not fatal.
func (a *PriceApplier) ApplySingle(ctx context.Context, listID int64, records []*domain.SyncRecord, products map[string]*domain.Product) {
	var rows []domain.ProductPrice
	for _, rec := range records {
		product, ok := products[strings.TrimSpace(rec.Code)]
		if !ok {
			continue
		}
		if !rec.Price.GreaterThan(decimal.Zero) {
			continue
		}
		rows = append(rows, domain.ProductPrice{
			ProductID:   product.ID,
			PriceListID: listID,
			Price:       rec.Price,
		})
	}
	if len(rows) == 0 {
		return
	}
	if _, _, err := a.prices.UpsertMany(ctx, rows); err != nil {
		a.logger.Warn("failed to write single-list prices", "list_id", listID, "rows", len(rows), "error", err)
	}
}

// ApplyMulti writes every (list code, price) pair the records carry,
// auto-creating unknown lists, and returns per-list outcome counts keyed
// by list code. A list that cannot be resolved or written is reported
// with its rows as errored.
func (a *PriceApplier) ApplyMulti(ctx context.Context, records []*domain.SyncRecord, products map[string]*domain.Product) map[string]domain.ListReport {
	rowsByCode := make(map[string][]domain.ProductPrice)
	for _, rec := range records {
		product, ok := products[strings.TrimSpace(rec.Code)]
		if !ok {
			continue
		}
		for _, lp := range rec.ListPrices {
			if !lp.Price.GreaterThan(decimal.Zero) {
				continue
			}
			rowsByCode[lp.ListCode] = append(rowsByCode[lp.ListCode], domain.ProductPrice{
				ProductID: product.ID,
				Price:     lp.Price,
			})
		}
	}
	if len(rowsByCode) == 0 {
		return nil
	}

	codes := make([]string, 0, len(rowsByCode))
	for code := range rowsByCode {
		codes = append(codes, code)
	}
	ids, err := a.lists.EnsureLists(ctx, codes)
	if err != nil {
		a.logger.Warn("failed to resolve price lists, skipping batch prices", "error", err)
		ids = map[string]int64{}
	}

	reports := make(map[string]domain.ListReport, len(rowsByCode))
	for code, rows := range rowsByCode {
		listID, ok := ids[code]
		if !ok {
			a.logger.Warn("price list unavailable, dropping its prices", "code", code, "rows", len(rows))
			reports[code] = domain.ListReport{Errored: len(rows)}
			continue
		}
		for i := range rows {
			rows[i].PriceListID = listID
		}
		created, updated, err := a.prices.UpsertMany(ctx, rows)
		if err != nil {
			a.logger.Warn("failed to write prices for list", "code", code, "rows", len(rows), "error", err)
			reports[code] = domain.ListReport{Errored: len(rows)}
			continue
		}
		reports[code] = domain.ListReport{Created: created, Updated: updated}
	}
	return reports
}
