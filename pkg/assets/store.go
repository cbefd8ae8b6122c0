package assets

import "context"

// Store persists normalized assets under derived keys and returns stable,
// publicly dereferenceable locators. Puts carry overwrite-allowed semantics so
// a retried upload to the same key is idempotent.
type Store interface {
	Put(ctx context.Context, key string, payload []byte, contentType string) (string, error)
}
