package protocolapi

import (
	"context"
	"time"
)

// AuditEntry is an append-only record of an externally visible action such
// as an export lifecycle transition.
type AuditEntry struct {
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	Actor      string         `json:"actor"`
	Subject    string         `json:"subject"`
	Status     string         `json:"status"`
	Reason     string         `json:"reason,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// AuditStore persists audit entries. List returns the most recent entries
// first, at most limit of them (limit <= 0 means no limit).
type AuditStore interface {
	Append(ctx context.Context, entry AuditEntry) error
	List(ctx context.Context, limit int) ([]AuditEntry, error)
	Close() error
}

// CloneMetadata copies a metadata map one level deep.
func CloneMetadata(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
