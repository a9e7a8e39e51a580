// Package postgres provides a Postgres-backed audit store reached through the
// pgx database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"protocolkb/pkg/protocolapi"
)

var _ protocolapi.AuditStore = (*AuditStore)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/protocolkb?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

const createAuditTable = `CREATE TABLE IF NOT EXISTS audit_log (
	seq BIGSERIAL PRIMARY KEY,
	id TEXT NOT NULL UNIQUE,
	action TEXT NOT NULL,
	actor TEXT NOT NULL,
	subject TEXT NOT NULL,
	status TEXT NOT NULL,
	reason TEXT NOT NULL,
	metadata JSONB NOT NULL,
	occurred_at TIMESTAMPTZ NOT NULL
)`

// AuditStore appends audit entries to Postgres.
type AuditStore struct {
	db *sql.DB
}

// NewAuditStore connects using dsn (falls back to a local default), pings the
// server and ensures the audit table exists.
func NewAuditStore(ctx context.Context, dsn string) (*AuditStore, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, createAuditTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure audit table: %w", err)
	}
	return &AuditStore{db: db}, nil
}

// Append inserts entry.
func (s *AuditStore) Append(ctx context.Context, entry protocolapi.AuditEntry) error {
	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_log(id,action,actor,subject,status,reason,metadata,occurred_at) VALUES($1,$2,$3,$4,$5,$6,$7,$8)`,
		entry.ID, entry.Action, entry.Actor, entry.Subject, entry.Status, entry.Reason, metadata, entry.OccurredAt.UTC(),
	); err != nil {
		return fmt.Errorf("insert audit entry %s: %w", entry.ID, err)
	}
	return nil
}

// List returns up to limit entries, newest first.
func (s *AuditStore) List(ctx context.Context, limit int) ([]protocolapi.AuditEntry, error) {
	query := `SELECT id,action,actor,subject,status,reason,metadata,occurred_at FROM audit_log ORDER BY seq DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select audit entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []protocolapi.AuditEntry
	for rows.Next() {
		var (
			entry    protocolapi.AuditEntry
			metadata []byte
			occurred time.Time
		)
		if err := rows.Scan(&entry.ID, &entry.Action, &entry.Actor, &entry.Subject, &entry.Status, &entry.Reason, &metadata, &occurred); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("decode metadata for %s: %w", entry.ID, err)
			}
		}
		entry.OccurredAt = occurred.UTC()
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return out, nil
}

// Close releases the connection pool.
func (s *AuditStore) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *AuditStore) DB() *sql.DB { return s.db }

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
