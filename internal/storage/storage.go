// Package storage holds the object-store abstraction for document blobs.
// Implementations stream to an S3-compatible backend; nothing touches
// local disk.
package storage

import (
	"context"
	"io"
	"time"
)

// PutObjectOptions are optional upload parameters. Size should be the
// exact byte count when known; -1 lets the backend chunk as it sees fit.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the object-store client used for document files.
// Delete is idempotent: removing a missing key is not an error, which is
// what makes it usable as a compensation step.
type Storage interface {
	// Put uploads an object under key from r.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get opens an object for streaming reads.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL for inline viewing.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	// PresignDownload returns a time-limited URL that forces a download
	// with the given filename via Content-Disposition.
	PresignDownload(ctx context.Context, key string, expiry time.Duration, filename string) (string, error)
}
