package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
	"github.com/veloz-labs/catalogo-core/internal/core/ports/driven"
)

// ProductReconciler folds one batch of ERP records into the tenant's
// product catalog: existing products get their ERP-sourced fields
// overwritten, unknown codes become new products with web-curated fields
// at their defaults.
type ProductReconciler struct {
	products driven.ProductStore
	logger   *slog.Logger
}

// NewProductReconciler creates a new ProductReconciler.
func NewProductReconciler(products driven.ProductStore, logger *slog.Logger) *ProductReconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductReconciler{products: products, logger: logger}
}

// ProductReconciliation is the outcome of reconciling one batch.
type ProductReconciliation struct {
	Processed int
	Created   int
	Updated   int
	Errored   int
	Errors    []domain.RecordError

	// Products holds every successfully persisted product keyed by
	// normalized code, for the price and stock passes that follow.
	Products map[string]*domain.Product
}

type pendingRecord struct {
	index  int
	code   string
	record *domain.SyncRecord
}

// Reconcile validates, matches and upserts one batch of records. A
// record that fails validation or persistence lands in Errors with its
// original batch index; only a failed bulk lookup or a failed upsert
// call as a whole aborts the batch.
func (r *ProductReconciler) Reconcile(ctx context.Context, tenantID int64, records []*domain.SyncRecord, categoryIDs map[int]int64) (*ProductReconciliation, error) {
	result := &ProductReconciliation{
		Processed: len(records),
		Products:  make(map[string]*domain.Product),
	}

	seen := make(map[string]bool, len(records))
	var pending []pendingRecord
	for i, rec := range records {
		code := strings.TrimSpace(rec.Code)
		if code == "" {
			result.Errors = append(result.Errors, recordError(rec, i, domain.ErrorKindInvalidCode, "record has no code"))
			continue
		}
		if seen[code] {
			result.Errors = append(result.Errors, recordError(rec, i, domain.ErrorKindDuplicateCode, "code repeated within batch"))
			continue
		}
		seen[code] = true
		pending = append(pending, pendingRecord{index: i, code: code, record: rec})
	}
	if len(pending) == 0 {
		result.Errored = len(result.Errors)
		return result, nil
	}

	codes := make([]string, 0, len(pending))
	for _, p := range pending {
		codes = append(codes, p.code)
	}
	existing, err := r.products.FetchByCodes(ctx, tenantID, codes)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]*domain.Product, len(existing))
	for _, p := range existing {
		byCode[p.Code] = p
	}

	indexByCode := make(map[string]int, len(pending))
	var creates, updates []*domain.Product
	for _, p := range pending {
		indexByCode[p.code] = p.index
		categoryID := resolveCategory(p.record, categoryIDs)

		if product, ok := byCode[p.code]; ok {
			if err := product.ApplyERP(p.record, categoryID); err != nil {
				result.Errors = append(result.Errors, recordErrorFrom(p.record, p.index, err))
				continue
			}
			updates = append(updates, product)
			result.Products[p.code] = product
			continue
		}

		product, err := domain.NewProduct(tenantID, p.record, categoryID)
		if err != nil {
			result.Errors = append(result.Errors, recordErrorFrom(p.record, p.index, err))
			continue
		}
		creates = append(creates, product)
		result.Products[p.code] = product
	}

	report, err := r.products.BulkUpsert(ctx, creates, updates)
	if err != nil {
		return nil, err
	}
	result.Created = report.Created
	result.Updated = report.Updated
	for _, ue := range report.Errors {
		delete(result.Products, ue.Code)
		result.Errors = append(result.Errors, domain.RecordError{
			Code:    ue.Code,
			Kind:    domain.ClassifyMessage(ue.Message),
			Message: ue.Message,
			Index:   indexByCode[ue.Code],
		})
	}

	result.Errored = len(result.Errors)
	return result, nil
}

// FetchExisting looks up a tenant's products by code and keys them for
// the stock and price passes. Used by stock-only batches, which never
// create products.
func (r *ProductReconciler) FetchExisting(ctx context.Context, tenantID int64, codes []string) (map[string]*domain.Product, error) {
	products := make(map[string]*domain.Product, len(codes))
	if len(codes) == 0 {
		return products, nil
	}
	existing, err := r.products.FetchByCodes(ctx, tenantID, codes)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		products[p.Code] = p
	}
	return products, nil
}

func resolveCategory(rec *domain.SyncRecord, categoryIDs map[int]int64) *int64 {
	if rec.CategoryCode == nil {
		return nil
	}
	id, ok := categoryIDs[*rec.CategoryCode]
	if !ok {
		return nil
	}
	return &id
}

func recordError(rec *domain.SyncRecord, index int, kind domain.ErrorKind, message string) domain.RecordError {
	return domain.RecordError{
		Code:         strings.TrimSpace(rec.Code),
		Description:  rec.Description,
		CategoryCode: rec.CategoryCode,
		Kind:         kind,
		Message:      message,
		Index:        index,
	}
}

func recordErrorFrom(rec *domain.SyncRecord, index int, err error) domain.RecordError {
	return recordError(rec, index, domain.Classify(err), err.Error())
}
