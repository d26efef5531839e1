package services

import (
	"context"
	"log/slog"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
	"github.com/veloz-labs/catalogo-core/internal/core/ports/driven"
)

// CategoryProvisioner ensures the category codes referenced by a batch
// exist before products point at them. Missing codes are auto-created
// with a placeholder name; codes that arrive with a supplied name get the
// name refreshed. A code whose creation fails is simply reported as
// unavailable - records referencing it fall back to "no category".
type CategoryProvisioner struct {
	categories driven.CategoryStore
	logger     *slog.Logger
}

// NewCategoryProvisioner creates a new CategoryProvisioner.
func NewCategoryProvisioner(categories driven.CategoryStore, logger *slog.Logger) *CategoryProvisioner {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryProvisioner{categories: categories, logger: logger}
}

// CategoryProvision reports the outcome of provisioning one batch's
// category references.
type CategoryProvision struct {
	// IDs maps every available category code to its id. A referenced
	// code absent from the map is unavailable.
	IDs      map[int]int64
	Existing int
	Created  int
}

// Provision bulk-checks the referenced codes, refreshes supplied names on
// existing categories and creates the missing ones. Per-code creation
// failures are logged, never fatal.
func (p *CategoryProvisioner) Provision(ctx context.Context, codes []int, names map[int]string) (*CategoryProvision, error) {
	result := &CategoryProvision{IDs: make(map[int]int64)}
	if len(codes) == 0 {
		return result, nil
	}

	existence, err := p.categories.CheckExistence(ctx, codes)
	if err != nil {
		return nil, err
	}

	renames := make(map[int]string)
	available := make([]int, 0, len(codes))
	for _, code := range codes {
		if !existence[code] {
			continue
		}
		result.Existing++
		available = append(available, code)
		if name, ok := names[code]; ok && name != "" {
			renames[code] = name
		}
	}

	if len(renames) > 0 {
		if err := p.categories.UpdateNames(ctx, renames); err != nil {
			p.logger.Warn("failed to refresh category names", "count", len(renames), "error", err)
		}
	}

	for _, code := range codes {
		if existence[code] {
			continue
		}
		category := &domain.Category{
			Code: code,
			Name: domain.PlaceholderCategoryName(code),
		}
		if name, ok := names[code]; ok && name != "" {
			category.Name = name
		}
		if err := p.categories.Create(ctx, category); err != nil {
			p.logger.Warn("failed to auto-create category", "code", code, "error", err)
			continue
		}
		result.Created++
		available = append(available, code)
	}

	fetched, err := p.categories.FetchByCodes(ctx, available)
	if err != nil {
		p.logger.Warn("failed to fetch provisioned categories", "error", err)
		return result, nil
	}
	for _, c := range fetched {
		result.IDs[c.Code] = c.ID
	}
	return result, nil
}
