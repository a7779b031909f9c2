// Package metadata is the console's local key/value store. The session
// store keeps the bearer token here so it survives restarts.
package metadata

import (
	"context"
	"time"
)

// Entry is one stored value with the time it was last written.
type Entry struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

type Repository interface {
	// Get returns common.ErrorNotFound when key is absent.
	Get(ctx context.Context, key string) (Entry, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) ([]Entry, error)
}
