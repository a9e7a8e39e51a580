package core

import (
	"context"
	"path/filepath"
	"testing"

	"protocolkb/internal/infra/persistence/memory"
	"protocolkb/internal/infra/persistence/sqlite"
)

func TestOpenAuditStoreDrivers(t *testing.T) {
	ctx := context.Background()

	store, err := OpenAuditStore(ctx, AuditOptions{})
	if err != nil {
		t.Fatalf("default driver: %v", err)
	}
	if _, ok := store.(*memory.AuditStore); !ok {
		t.Fatalf("expected memory store by default, got %T", store)
	}

	path := filepath.Join(t.TempDir(), "audit.db")
	store, err = OpenAuditStore(ctx, AuditOptions{Driver: AuditSQLite, SQLitePath: path})
	if err != nil {
		t.Fatalf("sqlite driver: %v", err)
	}
	defer func() { _ = store.Close() }()
	sq, ok := store.(*sqlite.AuditStore)
	if !ok || sq.Path() != path {
		t.Fatalf("expected sqlite store at %s, got %T", path, store)
	}

	if _, err := OpenAuditStore(ctx, AuditOptions{Driver: "cassandra"}); err == nil {
		t.Fatalf("expected unknown driver error")
	}
}

func TestAuditDriversListed(t *testing.T) {
	drivers := AuditDrivers()
	if len(drivers) != 3 || drivers[0] != AuditMemory || drivers[2] != AuditPostgres {
		t.Fatalf("unexpected drivers %v", drivers)
	}
}
