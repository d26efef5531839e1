package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tenant is a customer organization. Principal tenants originate sync
// sessions; client tenants consume catalogs (and carry per-tenant stock).
type Tenant struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Principal bool   `json:"principal"`
}

// Category is identified by its numeric rubro code, globally unique
// within the owning principal tenant's catalog.
type Category struct {
	ID   int64  `json:"id"`
	Code int    `json:"code"`
	Name string `json:"name"`
}

// PlaceholderCategoryName is the deterministic name given to categories
// auto-created on first reference.
func PlaceholderCategoryName(code int) string {
	return fmt.Sprintf("Category %d", code)
}

// GroupingType tags which of the three independent taxonomies a grouping
// code belongs to. Valid values are 1, 2 and 3.
type GroupingType int

// GroupingKey is the natural identity of a grouping: the same numeric
// code under different types denotes distinct entities.
type GroupingKey struct {
	Code int
	Type GroupingType
}

// Grouping (agrupacion) is an auxiliary classification code independent
// of the primary category taxonomy.
type Grouping struct {
	ID          int64        `json:"id"`
	TenantID    int64        `json:"tenant_id"`
	Code        int          `json:"code"`
	Type        GroupingType `json:"type"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
}

// PlaceholderGroupingName names groupings auto-created on first
// reference, disambiguated by type.
func PlaceholderGroupingName(key GroupingKey) string {
	return fmt.Sprintf("Grouping %d (type %d)", key.Code, key.Type)
}

// DefaultPriceListCode is the well-known code promoted to default when no
// default list exists.
const DefaultPriceListCode = "1"

// PriceList is a named set of prices. At most one list is the default
// system-wide.
type PriceList struct {
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Active  bool   `json:"active"`
	Default bool   `json:"default"`
}

// PlaceholderPriceListName names lists auto-created on first reference.
func PlaceholderPriceListName(code string) string {
	return fmt.Sprintf("Price list %s", code)
}

// ProductPrice is the (product, list) price row. Upsert semantics, no
// history.
type ProductPrice struct {
	ProductID   int64           `json:"product_id"`
	PriceListID int64           `json:"price_list_id"`
	Price       decimal.Decimal `json:"price"`
}
