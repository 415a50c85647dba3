package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kashiee/HRMS/internal/shared/contextutil"
)

// StdoutAuditLogger writes audit events through the process logger.
// Payroll has no audit store of its own; downstream log shipping owns
// retention.
type StdoutAuditLogger struct{}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	fields := []zap.Field{
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	}

	// Stamp the caller's identity when the event comes out of a request.
	md := contextutil.ExtractMetadata(ctx)
	if md.RequestID != "" {
		fields = append(fields, zap.String("request_id", md.RequestID))
	}
	if md.ActorID != "" {
		fields = append(fields, zap.String("actor_id", md.ActorID))
	}

	zap.L().Named("audit").Info("audit event", fields...)
}
