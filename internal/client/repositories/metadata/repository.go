// Package metadata is a small key/value store in the client's SQLite file.
// The session token lives here under common.TokenStorageKey.
package metadata

import "context"

// Repository returns (nil, nil) from Get when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
