// Package memory implements an in-process audit store for tests and
// ephemeral deployments.
package memory

import (
	"context"
	"sync"

	"protocolkb/pkg/protocolapi"
)

var _ protocolapi.AuditStore = (*AuditStore)(nil)

// AuditStore keeps audit entries in memory, in append order.
type AuditStore struct {
	mu      sync.RWMutex
	entries []protocolapi.AuditEntry
}

// NewAuditStore returns an empty store.
func NewAuditStore() *AuditStore { return &AuditStore{} }

// Append stores a copy of entry.
func (s *AuditStore) Append(_ context.Context, entry protocolapi.AuditEntry) error {
	entry.Metadata = protocolapi.CloneMetadata(entry.Metadata)
	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()
	return nil
}

// List returns up to limit entries, newest first.
func (s *AuditStore) List(_ context.Context, limit int) ([]protocolapi.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]protocolapi.AuditEntry, 0, n)
	for i := len(s.entries) - 1; i >= 0 && len(out) < n; i-- {
		entry := s.entries[i]
		entry.Metadata = protocolapi.CloneMetadata(entry.Metadata)
		out = append(out, entry)
	}
	return out, nil
}

// Close is a no-op.
func (s *AuditStore) Close() error { return nil }
