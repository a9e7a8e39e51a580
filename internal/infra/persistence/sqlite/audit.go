// Package sqlite persists audit entries to an embedded SQLite database using
// the pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"protocolkb/pkg/protocolapi"
)

var _ protocolapi.AuditStore = (*AuditStore)(nil)

const defaultPath = "protocolkb.db"

// AuditStore appends audit entries to a single SQLite table.
type AuditStore struct {
	db   *sql.DB
	path string
}

// NewAuditStore opens (creating if needed) the database at path.
func NewAuditStore(ctx context.Context, path string) (*AuditStore, error) {
	if path == "" {
		path = defaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serializes writers and keeps :memory: databases shared.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS audit_log (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		action TEXT NOT NULL,
		actor TEXT NOT NULL,
		subject TEXT NOT NULL,
		status TEXT NOT NULL,
		reason TEXT NOT NULL,
		metadata TEXT NOT NULL,
		occurred_at INTEGER NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create audit table: %w", err)
	}
	return &AuditStore{db: db, path: path}, nil
}

// Append inserts entry. Entry ids must be unique.
func (s *AuditStore) Append(ctx context.Context, entry protocolapi.AuditEntry) error {
	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_log(id,action,actor,subject,status,reason,metadata,occurred_at) VALUES(?,?,?,?,?,?,?,?)`,
		entry.ID, entry.Action, entry.Actor, entry.Subject, entry.Status, entry.Reason, string(metadata), entry.OccurredAt.UTC().UnixNano(),
	); err != nil {
		return fmt.Errorf("insert audit entry %s: %w", entry.ID, err)
	}
	return nil
}

// List returns up to limit entries, newest first.
func (s *AuditStore) List(ctx context.Context, limit int) ([]protocolapi.AuditEntry, error) {
	query := `SELECT id,action,actor,subject,status,reason,metadata,occurred_at FROM audit_log ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
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
			metadata string
			nanos    int64
		)
		if err := rows.Scan(&entry.ID, &entry.Action, &entry.Actor, &entry.Subject, &entry.Status, &entry.Reason, &metadata, &nanos); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if err := json.Unmarshal([]byte(metadata), &entry.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata for %s: %w", entry.ID, err)
		}
		entry.OccurredAt = time.Unix(0, nanos).UTC()
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return out, nil
}

// Close releases the database handle.
func (s *AuditStore) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *AuditStore) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *AuditStore) Path() string { return s.path }
