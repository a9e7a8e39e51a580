package protocols

import (
	"context"

	"go.uber.org/zap"

	"protocolkb/pkg/protocolapi"
)

// StoreAuditLogger appends audit entries to a protocolapi.AuditStore and
// mirrors them to the structured log. Append failures are logged, never
// propagated, so exports keep running when the audit backend is degraded.
type StoreAuditLogger struct {
	store  protocolapi.AuditStore
	logger *zap.Logger
}

var _ AuditLogger = (*StoreAuditLogger)(nil)

// NewStoreAuditLogger wraps store. A nil logger discards log output.
func NewStoreAuditLogger(store protocolapi.AuditStore, logger *zap.Logger) *StoreAuditLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreAuditLogger{store: store, logger: logger}
}

// Record persists entry.
func (l *StoreAuditLogger) Record(ctx context.Context, entry protocolapi.AuditEntry) {
	fields := []zap.Field{
		zap.String("audit_id", entry.ID),
		zap.String("action", entry.Action),
		zap.String("subject", entry.Subject),
		zap.String("status", entry.Status),
		zap.String("actor", entry.Actor),
	}
	if err := l.store.Append(ctx, entry); err != nil {
		l.logger.Warn("append audit entry", append(fields, zap.Error(err))...)
		return
	}
	l.logger.Debug("audit entry recorded", fields...)
}
