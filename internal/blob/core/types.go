// Package core defines the blob storage contract shared by the backend
// implementations under internal/infra/blob. Export artifacts (protocol
// sheets) are the only blobs this module writes.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// Driver identifies a concrete blob storage backend implementation.
type Driver string

const (
	DriverFilesystem Driver = "fs"     // local filesystem (default, dev)
	DriverS3         Driver = "s3"     // S3 / MinIO compatible
	DriverMemory     Driver = "memory" // in-memory (tests)
)

// PutOptions specifies optional parameters for Put.
type PutOptions struct {
	ContentType string            // MIME type, optional
	Metadata    map[string]string // small, flat key-value pairs
}

// SignedURLOptions holds options for generating a pre-signed URL.
type SignedURLOptions struct {
	Method  string        // only GET is supported
	Expiry  time.Duration // default DefaultPresignExpiry
	Headers map[string]string
}

// DefaultPresignExpiry applies when SignedURLOptions.Expiry is unset.
const DefaultPresignExpiry = 15 * time.Minute

// Info describes a stored blob.
type Info struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size_bytes"`
	ContentType  string            `json:"content_type,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"last_modified"`
	URL          string            `json:"url,omitempty"`
}

// Store is a minimal S3-like object store. Put is create-only; Delete
// reports whether the key existed; List is ordered by key.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Head(ctx context.Context, key string) (Info, error)
	Delete(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	PresignURL(ctx context.Context, key string, opts SignedURLOptions) (string, error)
	Driver() Driver
}

var (
	// ErrUnsupported is returned when an optional capability is not available.
	ErrUnsupported = errors.New("blobstore: unsupported operation")
	// ErrNotFound wraps lookups of missing keys.
	ErrNotFound = errors.New("blobstore: not found")
	// ErrExists wraps create-only writes to an existing key.
	ErrExists = errors.New("blobstore: already exists")
)

// NotFound returns an ErrNotFound wrapped with key.
func NotFound(key string) error { return fmt.Errorf("blob %s: %w", key, ErrNotFound) }

// Exists returns an ErrExists wrapped with key.
func Exists(key string) error { return fmt.Errorf("blob %s: %w", key, ErrExists) }

// CleanKey validates a slash separated key and returns its canonical form.
// Empty, absolute and escaping keys are rejected.
func CleanKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key")
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("invalid absolute key %q", key)
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == ".." {
			return "", fmt.Errorf("invalid key traversal %q", key)
		}
	}
	return path.Clean(key), nil
}

// PresignMethod normalizes opts.Method, rejecting anything but GET.
func PresignMethod(opts SignedURLOptions) error {
	if opts.Method != "" && !strings.EqualFold(opts.Method, "GET") {
		return ErrUnsupported
	}
	return nil
}

// CloneMetadata copies m, keeping nil as nil.
func CloneMetadata(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
