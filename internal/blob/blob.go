// Package blob abstracts the object store where bulk-import source files are
// staged. Keys map to object keys directly, one bucket per deployment.
package blob

import (
	"context"
	"errors"
	"io"
	"time"
)

// PutOptions specifies optional parameters for Put.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// SignedURLOptions holds options for generating a pre-signed download URL.
type SignedURLOptions struct {
	Expiry time.Duration // default 15m
}

// Info describes a stored object.
type Info struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size_bytes"`
	ContentType  string    `json:"content_type,omitempty"`
	ETag         string    `json:"etag,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// Store is the staging backend for import source files. Implementations must
// be safe for concurrent use.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Head(ctx context.Context, key string) (Info, error)
	Delete(ctx context.Context, key string) error
	PresignURL(ctx context.Context, key string, opts SignedURLOptions) (string, error)
}

// ErrObjectNotFound is returned by Head when the key does not exist.
var ErrObjectNotFound = errors.New("blob: object not found")
