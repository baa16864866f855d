package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Record is a single row of any resource. Data is an opaque JSON object.
type Record struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	Resource  Resource        `db:"resource" json:"resource"`
	Data      json.RawMessage `db:"data" json:"data" swaggertype:"object"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// AuditEntry is the data of an audit_logs record.
type AuditEntry struct {
	Action   AuditAction `json:"action"`
	Resource Resource    `json:"resource"`
	RecordID uuid.UUID   `json:"record_id"`
	At       time.Time   `json:"at"`
}
