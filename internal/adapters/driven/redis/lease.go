package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/veloz-labs/catalogo-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SessionLease = (*Lease)(nil)

const leasePrefix = "catalogo:lease:"

// Lease implements SessionLease using Redis SETNX with TTL. A unique
// owner ID prevents one engine instance from releasing a lease held by
// another.
type Lease struct {
	client  *redis.Client
	ownerID string
}

// NewLease creates a new Redis-backed session lease.
// The owner ID is automatically generated to uniquely identify this instance.
func NewLease(client *redis.Client) *Lease {
	return &Lease{
		client:  client,
		ownerID: generateOwnerID(),
	}
}

// generateOwnerID creates a unique identifier for this lease holder.
// Format: hostname:pid:random
func generateOwnerID() string {
	hostname, _ := os.Hostname()
	randomBytes := make([]byte, 8)
	_, _ = rand.Read(randomBytes)
	return fmt.Sprintf("%s:%d:%s", hostname, os.Getpid(), hex.EncodeToString(randomBytes))
}

// Acquire attempts to take a named lease with the given TTL.
// Returns true if acquired, false if already held by another instance.
func (l *Lease) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	key := leasePrefix + name
	result, err := l.client.SetNX(ctx, key, l.ownerID, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lease %s: %w", name, err)
	}
	return result, nil
}

// releaseScript atomically checks ownership and deletes, so an expired
// lease reacquired by another instance is never released by us.
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// Release releases a named lease if held by this instance.
// Safe to call even if the lease is not held or has expired.
func (l *Lease) Release(ctx context.Context, name string) error {
	key := leasePrefix + name
	_, err := releaseScript.Run(ctx, l.client, []string{key}, l.ownerID).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("release lease %s: %w", name, err)
	}
	return nil
}

// Ping checks if the Redis backend is healthy.
func (l *Lease) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// OwnerID returns the unique identifier for this lease instance.
func (l *Lease) OwnerID() string {
	return l.ownerID
}
