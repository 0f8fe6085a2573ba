package lockstore

import (
	"context"
	"os"
)

// ErrNotFound is returned when a key does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// DefaultKey is the key used when the host does not name one.
const DefaultKey = "locked_sets"

// Store is a key/value store for encoded locked selections.
type Store interface {
	// Get returns the payload stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the payload stored under key.
	Put(ctx context.Context, key string, data []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
