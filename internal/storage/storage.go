package storage

import "context"

// Store persists generated image bytes and returns a durable public URL.
// Image providers that already host their output bypass the store; providers
// that return raw bytes cannot produce a resolved item without it.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
