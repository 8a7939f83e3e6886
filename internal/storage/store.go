// Package storage holds the key-value persistence used for ledger records.
//
// Values are opaque strings; callers own the encoding. A missing key is not an
// error: Get reports it through the ok result.
package storage

import "context"

// Store is a string key-value store.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
