package driven

import (
	"context"
	"time"
)

// SessionLease is the advisory per-tenant lease taken while a sync
// session runs. Failure to acquire is logged, never enforced: duplicate
// concurrent sessions stay possible and are tolerated by idempotent
// upserts at the data layer.
type SessionLease interface {
	// Acquire attempts to take a named lease with the given TTL.
	// Returns false when another holder has it.
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)

	// Release releases a named lease if held by this instance
	Release(ctx context.Context, name string) error
}
