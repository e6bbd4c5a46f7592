// Package snapshots persists whole blobs under fixed keys. Every Save
// replaces the previous value atomically; there are no partial writes.
package snapshots

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when nothing was ever saved under the key.
var ErrNotFound = errors.New("snapshot not found")

// Store is the durable key-value surface used by the vendor directory.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
}
