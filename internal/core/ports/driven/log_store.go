package driven

import (
	"context"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
)

// LogStore handles sync log persistence (PostgreSQL)
type LogStore interface {
	// Create persists the immutable audit snapshot of a finished session
	Create(ctx context.Context, entry *domain.SyncLog) error
}
