package domain

import "time"

// Audit actions recorded by the async audit pipeline.
const (
	AuditRegister = "register"
	AuditLogin    = "login"
	AuditValidate = "validate"
	AuditRefresh  = "refresh"
	AuditDelete   = "delete_user"
)

// AuditEvent records the outcome of an authentication operation.
type AuditEvent struct {
	Action    string
	Username  string
	Outcome   string // "success" or a short failure reason
	Timestamp time.Time
}
