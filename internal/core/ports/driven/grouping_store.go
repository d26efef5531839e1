package driven

import (
	"context"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
)

// GroupingStore handles grouping (agrupacion) persistence (PostgreSQL)
type GroupingStore interface {
	// FetchExisting lists the (code, type) pairs already stored for a
	// tenant
	FetchExisting(ctx context.Context, tenantID int64) ([]domain.GroupingKey, error)

	// CreateBulk persists a batch of groupings
	CreateBulk(ctx context.Context, groupings []*domain.Grouping) error
}
