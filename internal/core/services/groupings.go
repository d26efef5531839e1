package services

import (
	"context"
	"log/slog"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
	"github.com/veloz-labs/catalogo-core/internal/core/ports/driven"
)

// GroupingProvisioner ensures the (code, type) grouping pairs referenced
// by a batch exist for the tenant. The same numeric code under two
// different types is two distinct entities. Downstream reconciliation
// does not depend on the created groupings within the same batch, so
// failures here are logged and never fatal.
type GroupingProvisioner struct {
	groupings driven.GroupingStore
	logger    *slog.Logger
}

// NewGroupingProvisioner creates a new GroupingProvisioner.
func NewGroupingProvisioner(groupings driven.GroupingStore, logger *slog.Logger) *GroupingProvisioner {
	if logger == nil {
		logger = slog.Default()
	}
	return &GroupingProvisioner{groupings: groupings, logger: logger}
}

// Provision bulk-creates the missing (code, type) pairs and returns how
// many were created.
func (p *GroupingProvisioner) Provision(ctx context.Context, tenantID int64, keys []domain.GroupingKey) int {
	if len(keys) == 0 {
		return 0
	}

	existing, err := p.groupings.FetchExisting(ctx, tenantID)
	if err != nil {
		p.logger.Warn("failed to fetch existing groupings", "tenant_id", tenantID, "error", err)
		return 0
	}
	known := make(map[domain.GroupingKey]bool, len(existing))
	for _, key := range existing {
		known[key] = true
	}

	var missing []*domain.Grouping
	for _, key := range keys {
		if known[key] {
			continue
		}
		known[key] = true
		missing = append(missing, &domain.Grouping{
			TenantID:    tenantID,
			Code:        key.Code,
			Type:        key.Type,
			Name:        domain.PlaceholderGroupingName(key),
			Description: domain.PlaceholderGroupingName(key),
		})
	}
	if len(missing) == 0 {
		return 0
	}

	if err := p.groupings.CreateBulk(ctx, missing); err != nil {
		p.logger.Warn("failed to auto-create groupings", "tenant_id", tenantID, "count", len(missing), "error", err)
		return 0
	}
	return len(missing)
}

// CollectGroupingKeys derives the deduplicated (code, type) pairs from
// the three grouping fields across a batch.
func CollectGroupingKeys(records []*domain.SyncRecord) []domain.GroupingKey {
	seen := make(map[domain.GroupingKey]bool)
	var keys []domain.GroupingKey
	add := func(code *int, typ domain.GroupingType) {
		if code == nil {
			return
		}
		key := domain.GroupingKey{Code: *code, Type: typ}
		if seen[key] {
			return
		}
		seen[key] = true
		keys = append(keys, key)
	}
	for _, rec := range records {
		add(rec.GroupingCode1, 1)
		add(rec.GroupingCode2, 2)
		add(rec.GroupingCode3, 3)
	}
	return keys
}
