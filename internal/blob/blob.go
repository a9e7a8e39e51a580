// Package blob is the entry point to object storage for export artifacts.
// It re-exports the core contract and selects a backend by driver name.
package blob

import (
	"context"
	"fmt"

	"protocolkb/internal/blob/core"
	"protocolkb/internal/infra/blob/fs"
	"protocolkb/internal/infra/blob/memory"
	"protocolkb/internal/infra/blob/s3"
)

type (
	Driver           = core.Driver
	PutOptions       = core.PutOptions
	SignedURLOptions = core.SignedURLOptions
	Info             = core.Info
	Store            = core.Store
	S3Config         = s3.Config
)

const (
	DriverFilesystem = core.DriverFilesystem
	DriverS3         = core.DriverS3
	DriverMemory     = core.DriverMemory
)

var (
	ErrUnsupported = core.ErrUnsupported
	ErrNotFound    = core.ErrNotFound
	ErrExists      = core.ErrExists
)

// Options selects and configures a backend.
type Options struct {
	Driver Driver
	FSRoot string
	S3     S3Config
}

// Open constructs the configured store. An empty driver means fs.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", DriverFilesystem:
		return fs.New(opts.FSRoot)
	case DriverS3:
		return s3.New(ctx, opts.S3)
	case DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", opts.Driver)
	}
}

// Drivers lists the accepted driver names.
func Drivers() []Driver {
	return []Driver{DriverFilesystem, DriverS3, DriverMemory}
}
