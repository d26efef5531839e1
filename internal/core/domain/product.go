package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultUnit is the unit of measure assigned to newly synced products.
const DefaultUnit = "unidad"

// Product is a tenant-scoped catalog product. Its fields fall into two
// disjoint sets: ERP-sourced fields overwritten verbatim by every sync,
// and web-curated fields that sync must never touch. The split is
// enforced by ApplyERP, not by convention.
type Product struct {
	ID       int64  `json:"id"`
	TenantID int64  `json:"tenant_id"`
	Code     string `json:"code"`

	// ERP-sourced
	Description     string     `json:"description"`
	CategoryID      *int64     `json:"category_id,omitempty"`
	Grouping1       *int       `json:"grouping_1,omitempty"`
	Grouping2       *int       `json:"grouping_2,omitempty"`
	Grouping3       *int       `json:"grouping_3,omitempty"`
	SourceCreatedAt *time.Time `json:"source_created_at,omitempty"`
	SourceUpdatedAt *time.Time `json:"source_updated_at,omitempty"`
	Imputable       bool       `json:"imputable"`
	Available       bool       `json:"available"`
	Location        string     `json:"location,omitempty"`

	// Web-curated
	Visible          bool     `json:"visible"`
	Featured         bool     `json:"featured"`
	CategoryOrder    int      `json:"category_order"`
	Images           []string `json:"images,omitempty"`
	ShortDescription string   `json:"short_description,omitempty"`
	LongDescription  string   `json:"long_description,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	Barcode          string   `json:"barcode,omitempty"`
	Brand            string   `json:"brand,omitempty"`
	Unit             string   `json:"unit"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProduct builds a product from an ERP record with web-curated fields
// at their defaults: visible, not featured, default ordering and unit.
func NewProduct(tenantID int64, rec *SyncRecord, categoryID *int64) (*Product, error) {
	if err := validateRecord(rec); err != nil {
		return nil, err
	}
	p := &Product{
		TenantID: tenantID,
		Code:     strings.TrimSpace(rec.Code),
		Visible:  true,
		Unit:     DefaultUnit,
	}
	p.applyERPFields(rec, categoryID)
	return p, nil
}

// ApplyERP overwrites the ERP-sourced fields from a record. Web-curated
// fields are left untouched.
func (p *Product) ApplyERP(rec *SyncRecord, categoryID *int64) error {
	if err := validateRecord(rec); err != nil {
		return err
	}
	p.applyERPFields(rec, categoryID)
	return nil
}

func (p *Product) applyERPFields(rec *SyncRecord, categoryID *int64) {
	p.Description = rec.Description
	p.CategoryID = categoryID
	p.Grouping1 = rec.GroupingCode1
	p.Grouping2 = rec.GroupingCode2
	p.Grouping3 = rec.GroupingCode3
	p.SourceCreatedAt = rec.SourceCreatedAt
	p.SourceUpdatedAt = rec.SourceUpdatedAt
	p.Imputable = rec.Imputable
	p.Available = rec.Available
	p.Location = rec.Location
}

func validateRecord(rec *SyncRecord) error {
	code := strings.TrimSpace(rec.Code)
	if code == "" {
		return fmt.Errorf("%w: record has no code", ErrInvalidInput)
	}
	if rec.Price.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: negative price for %q", ErrInvalidInput, code)
	}
	for _, lp := range rec.ListPrices {
		if lp.Price.LessThan(decimal.Zero) {
			return fmt.Errorf("%w: negative price for %q on list %q", ErrInvalidInput, code, lp.ListCode)
		}
	}
	return nil
}
