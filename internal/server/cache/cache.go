// Package cache provides the TTL key/value store holding session tokens.
package cache

import (
	"context"
	"time"
)

// Cache is a string key/value store with per-key expiry. Get returns
// common.ErrorNotFound for absent or expired keys; Delete of an absent key
// is not an error.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
