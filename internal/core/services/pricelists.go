package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
	"github.com/veloz-labs/catalogo-core/internal/core/ports/driven"
)

// PriceListProvisioner ensures the price lists referenced by a batch
// exist, and guarantees exactly one default list system-wide.
type PriceListProvisioner struct {
	lists  driven.PriceListStore
	logger *slog.Logger
}

// NewPriceListProvisioner creates a new PriceListProvisioner.
func NewPriceListProvisioner(lists driven.PriceListStore, logger *slog.Logger) *PriceListProvisioner {
	if logger == nil {
		logger = slog.Default()
	}
	return &PriceListProvisioner{lists: lists, logger: logger}
}

// EnsureLists resolves the given codes to list ids, creating missing
// lists with a placeholder name. Per-code creation failures are
// independent: a failed code is logged and left out of the result.
func (p *PriceListProvisioner) EnsureLists(ctx context.Context, codes []string) (map[string]int64, error) {
	ids := make(map[string]int64, len(codes))
	if len(codes) == 0 {
		return ids, nil
	}

	active, err := p.lists.FetchAllActive(ctx)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]int64, len(active))
	for _, l := range active {
		byCode[l.Code] = l.ID
	}

	for _, code := range codes {
		if id, ok := byCode[code]; ok {
			ids[code] = id
			continue
		}
		list := &domain.PriceList{
			Code:   code,
			Name:   domain.PlaceholderPriceListName(code),
			Active: true,
		}
		if err := p.lists.Create(ctx, list); err != nil {
			p.logger.Warn("failed to auto-create price list", "code", code, "error", err)
			continue
		}
		ids[code] = list.ID
	}
	return ids, nil
}

// EnsureDefault marks the list with the well-known code "1" as default
// when no default exists. Idempotent; a no-op when a default is already
// set or no such list exists.
func (p *PriceListProvisioner) EnsureDefault(ctx context.Context) error {
	_, err := p.lists.DefaultID(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	id, err := p.lists.IDByCode(ctx, domain.DefaultPriceListCode)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	p.logger.Info("marking well-known price list as default", "code", domain.DefaultPriceListCode, "id", id)
	return p.lists.SetDefault(ctx, id)
}
