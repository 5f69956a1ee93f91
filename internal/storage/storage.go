package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when no blob exists under the requested key.
var ErrNotFound = errors.New("blob not found")

// ObjectInfo describes a stored blob without its payload.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Storage defines the blob-store interface. Keys are flat strings within a
// single bucket; the same key always maps to the same public URL.
type Storage interface {
	// Put writes the blob under key and returns its public URL.
	// Writing an existing key overwrites it.
	Put(ctx context.Context, key string, data io.Reader, size int64, contentType string) (string, error)

	// Get returns the full blob payload, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the blob. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error

	// Head returns blob metadata without fetching the payload, or ErrNotFound.
	Head(ctx context.Context, key string) (*ObjectInfo, error)

	// List returns all keys starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// URL returns the deterministic public URL for key, whether or not
	// a blob exists under it.
	URL(key string) string

	// EnsureBucket creates the backing bucket if it does not exist yet.
	// Called once at startup, idempotent.
	EnsureBucket(ctx context.Context) error
}
