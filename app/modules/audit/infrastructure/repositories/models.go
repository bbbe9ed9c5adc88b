package auditdb

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AuditEntry is one recorded stake lifecycle event.
type AuditEntry struct {
	bun.BaseModel `bun:"table:audit_log,alias:a"`

	ID            uuid.UUID       `bun:"id,pk,type:uuid" json:"id"`
	Topic         string          `bun:"topic,notnull" json:"topic"`
	CorrelationID string          `bun:"correlation_id,nullzero" json:"correlation_id,omitempty"`
	Payload       json.RawMessage `bun:"payload,type:jsonb" json:"payload"`
	CreatedAt     time.Time       `bun:"created_at,nullzero,notnull,default:now()" json:"created_at"`
}
