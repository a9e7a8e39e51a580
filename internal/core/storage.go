package core

import (
	"context"
	"fmt"

	"protocolkb/internal/infra/persistence/memory"
	"protocolkb/internal/infra/persistence/postgres"
	"protocolkb/internal/infra/persistence/sqlite"
	"protocolkb/pkg/protocolapi"
)

// AuditDriver identifies a concrete audit log implementation.
type AuditDriver string

const (
	AuditMemory   AuditDriver = "memory"   // in-memory only (tests / ephemeral)
	AuditSQLite   AuditDriver = "sqlite"   // embedded sqlite file
	AuditPostgres AuditDriver = "postgres" // PostgreSQL server
)

// AuditDrivers lists the accepted driver names.
func AuditDrivers() []AuditDriver {
	return []AuditDriver{AuditMemory, AuditSQLite, AuditPostgres}
}

// AuditOptions selects and configures an audit backend.
type AuditOptions struct {
	Driver      AuditDriver
	SQLitePath  string
	PostgresDSN string
}

// OpenAuditStore selects a backend from opts. An empty driver means memory.
func OpenAuditStore(ctx context.Context, opts AuditOptions) (protocolapi.AuditStore, error) {
	switch opts.Driver {
	case "", AuditMemory:
		return memory.NewAuditStore(), nil
	case AuditSQLite:
		return sqlite.NewAuditStore(ctx, opts.SQLitePath)
	case AuditPostgres:
		return postgres.NewAuditStore(ctx, opts.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown audit driver %s", opts.Driver)
	}
}
