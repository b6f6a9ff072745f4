package ports

import (
	"context"
	"time"
)

// Audit actions recorded by the services.
const (
	AuditLogin            = "login"
	AuditRegister         = "register"
	AuditAssignmentCreate = "assignment_create"
	AuditAssignmentEdit   = "assignment_edit"
	AuditAssignmentDelete = "assignment_delete"
	AuditSubmit           = "submission_create"
	AuditStatusUpdate     = "submission_status_update"
)

// AuditEntry is one recorded action, written asynchronously after the
// request completes its store operation.
type AuditEntry struct {
	Username   string
	Action     string
	ResourceID string
	OccurredAt time.Time
}

// AuditRecorder accepts entries for asynchronous persistence. Record must
// not block request handling.
type AuditRecorder interface {
	Record(entry AuditEntry)
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry AuditEntry) error
}
