// Package audit maintains the append-only trail of review decisions. Entries
// are written asynchronously; delivery failures surface on an operator channel
// and never fail the decision that produced them.
package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Actions recorded by the review pipeline.
const (
	ActionDocumentApproved = "DOCUMENT_APPROVED"
	ActionDocumentRejected = "DOCUMENT_REJECTED"
)

// EntityDocument is the entity type for document decision entries.
const EntityDocument = "DOCUMENT"

// Entry is one immutable audit record. Entries are inserted once and never
// updated or deleted.
type Entry struct {
	ID         uuid.UUID       `json:"id"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Actor      string          `json:"actor"`
	Details    string          `json:"details"`
	Changes    json.RawMessage `json:"changes,omitempty"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// DeliveryFailure reports an entry that could not be appended. Consumers are
// operator tooling; the originating business operation has already completed.
type DeliveryFailure struct {
	Entry Entry
	Err   error
	At    time.Time
}
