// Package cache stores JSON-encoded values with a TTL.
package cache

import (
	"context"
	"time"
)

// Cache is implemented by RedisCache and Nop.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// Nop never stores anything; every Get is a miss.
type Nop struct{}

func (Nop) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (Nop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Nop) InvalidatePrefix(context.Context, string) error        { return nil }
