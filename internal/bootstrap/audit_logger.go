package bootstrap

import "context"

// AuditLog is one operator-visible lifecycle event, kept separate from
// request logging.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records audit events. Implementations must be safe for
// concurrent use.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
