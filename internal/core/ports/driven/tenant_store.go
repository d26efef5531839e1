package driven

import (
	"context"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
)

// TenantStore handles tenant lookups (PostgreSQL)
type TenantStore interface {
	// Get retrieves a tenant by id
	Get(ctx context.Context, id int64) (*domain.Tenant, error)

	// Exist reports, for every requested id, whether the tenant exists
	Exist(ctx context.Context, ids []int64) (map[int64]bool, error)
}
