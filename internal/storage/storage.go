package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no value exists for the key.
var ErrNotFound = errors.New("key not found")

//go:generate mockgen -source=storage.go -destination=storage_mock.go -package=storage

// Store is a key-value blob store. Each collection is persisted as a single
// JSON blob under its own key, written back in full after every change.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}
