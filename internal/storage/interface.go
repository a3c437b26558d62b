package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has never been written or was deleted
var ErrNotFound = errors.New("key not found")

// Provider is client-side persistent key/value storage. Values are opaque
// strings; concurrent writers are not coordinated and the last write wins.
type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Load(ctx context.Context) error
	Close() error

	// Key/value
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)

	// Utils
	GetConfigPath() string
	SchemaStatus(ctx context.Context) (current, latest int, err error)
}
