package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListPrice is one (price list code, price) pair carried by a record in
// multi-list mode.
type ListPrice struct {
	ListCode string          `json:"list_code"`
	Price    decimal.Decimal `json:"price"`
}

// StockEntry is one (reselling tenant, quantity) pair carried by a
// record. A single ERP record can carry stock for multiple tenants.
type StockEntry struct {
	TenantID int64           `json:"tenant_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// SyncRecord is one pre-parsed ERP record within a batch. How it was
// transported (file, queue, HTTP) is the caller's concern.
type SyncRecord struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`

	CategoryCode *int   `json:"category_code,omitempty"`
	CategoryName string `json:"category_name,omitempty"`

	// Three independent grouping taxonomies, sourced from three
	// separate ERP fields.
	GroupingCode1 *int `json:"grouping_code_1,omitempty"`
	GroupingCode2 *int `json:"grouping_code_2,omitempty"`
	GroupingCode3 *int `json:"grouping_code_3,omitempty"`

	// Price is used in single-list mode; ListPrices in multi-list mode.
	Price      decimal.Decimal `json:"price"`
	ListPrices []ListPrice     `json:"list_prices,omitempty"`

	Stock []StockEntry `json:"stock,omitempty"`

	SourceCreatedAt *time.Time `json:"source_created_at,omitempty"`
	SourceUpdatedAt *time.Time `json:"source_updated_at,omitempty"`

	Imputable bool   `json:"imputable"`
	Available bool   `json:"available"`
	Location  string `json:"location,omitempty"`
}

// ListReport tracks per-price-list outcome counts in multi-list mode.
type ListReport struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Errored int `json:"errored"`
}

// BatchResult is what the caller gets back for one processed batch.
type BatchResult struct {
	BatchNumber int `json:"batch_number"`

	Processed int `json:"processed"`
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Errored   int `json:"errored"`

	Errors []RecordError `json:"errors,omitempty"`

	// Category provisioning diagnostics: how many referenced categories
	// pre-existed vs were auto-created for this batch.
	CategoriesExisting int `json:"categories_existing"`
	CategoriesCreated  int `json:"categories_created"`

	// ListReports is populated in multi-list mode, keyed by list code.
	ListReports map[string]ListReport `json:"list_reports,omitempty"`

	Duration time.Duration `json:"-"`
}

// Totals converts the result into the counter delta folded into the
// owning session.
func (r *BatchResult) Totals() BatchTotals {
	return BatchTotals{
		Records:  r.Processed,
		Created:  r.Created,
		Updated:  r.Updated,
		Errored:  r.Errored,
		Duration: r.Duration,
	}
}
