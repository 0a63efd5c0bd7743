package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is one append-only entry in the operation history. One entry is
// written per logical mutation: per affected record for batch edits and
// deletes, one summary entry for imports.
type AuditLog struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	User      string    `json:"user" db:"user_email"`
	Action    string    `json:"action" db:"action"`
	Subject   string    `json:"subject" db:"subject"`
	Details   string    `json:"details" db:"details"`
}

// Action constants for audit logs.
const (
	ActionCreate       = "create"
	ActionUpdate       = "update"
	ActionDelete       = "delete"
	ActionBatchUpdate  = "batch-update"
	ActionBatchDelete  = "batch-delete"
	ActionTransactIn   = "transact-in"
	ActionTransactOut  = "transact-out"
	ActionImportCSV    = "import-csv"
	ActionImportImages = "import-images"
)

// MaxAuditLogPage bounds how many entries the audit viewer may request.
const MaxAuditLogPage = 500
