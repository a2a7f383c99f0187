package models

import "time"

// AuditAction is a recorded action type
type AuditAction string

const (
	AuditCreate         AuditAction = "create"
	AuditRead           AuditAction = "read"
	AuditUpdate         AuditAction = "update"
	AuditDelete         AuditAction = "delete"
	AuditLogin          AuditAction = "login"
	AuditLogout         AuditAction = "logout"
	AuditRegister       AuditAction = "register"
	AuditPasswordChange AuditAction = "password_change"
	AuditPasswordReset  AuditAction = "password_reset"
)

// AuditLog is an append-only record of a user action based on the
// 'audit_logs' table
type AuditLog struct {
	ID        int64       `json:"id" db:"id"`
	UserID    *int64      `json:"userId,omitempty" db:"user_id"` // nil for anonymous requests
	Action    AuditAction `json:"action" db:"action"`
	Entity    string      `json:"entity" db:"entity"`
	EntityID  *int64      `json:"entityId,omitempty" db:"entity_id"`
	Details   string      `json:"details,omitempty" db:"details"`
	IP        string      `json:"ip" db:"ip"`
	UserAgent string      `json:"userAgent" db:"user_agent"`
	Timestamp time.Time   `json:"timestamp" db:"created_at"`
}
