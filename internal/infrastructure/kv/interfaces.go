package kv

import (
	"context"
	"errors"
)

// Store is the durable string key-value substrate the generator persists into.
// Values are opaque strings; callers own the encoding.
type Store interface {
	// Get retrieves a value by key; a missing key yields ErrKeyNotFound
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value, replacing any previous one
	Set(ctx context.Context, key, value string) error

	// Remove deletes a key; removing a missing key is not an error
	Remove(ctx context.Context, key string) error

	// Close releases the backend connection
	Close() error
}

// ErrKeyNotFound is returned when a key doesn't exist
type ErrKeyNotFound struct {
	Key string
}

func (e ErrKeyNotFound) Error() string {
	return "kv key not found: " + e.Key
}

// IsNotFound reports whether err is an ErrKeyNotFound
func IsNotFound(err error) bool {
	var notFound ErrKeyNotFound
	return errors.As(err, &notFound)
}
