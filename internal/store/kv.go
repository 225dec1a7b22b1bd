package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// KV is the string-keyed blob storage the tournament catalog is mirrored to.
// Get returns ErrNotFound for keys that were never written.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Closer is implemented by adapters holding connections or files.
type Closer interface {
	Close() error
}

// Close releases kv if it holds resources.
func Close(kv KV) error {
	if c, ok := kv.(Closer); ok {
		return c.Close()
	}
	return nil
}
