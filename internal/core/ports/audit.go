package ports

import (
	"context"

	"github.com/dataprogramming/auth-service/internal/core/domain"
)

// AuditRecorder persists authentication audit events.
type AuditRecorder interface {
	Record(ctx context.Context, event *domain.AuditEvent) error
}

// AuditSink accepts audit events for asynchronous recording. Implementations
// must not block the request path; events may be dropped under load.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}
