// Package documents implements the vendor document domain for Countersign.
// It provides types, data access, and the guarded status transition that the
// review pipeline commits decisions through.
package documents

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the review lifecycle state of a document. Pending documents are
// the only ones that may transition, and both terminal states are final.
type Status string

const (
	StatusPendingReview Status = "PENDING_REVIEW"
	StatusApproved      Status = "APPROVED"
	StatusRejected      Status = "REJECTED"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPendingReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Priority orders the pending queue. Documents without an assigned priority
// default to medium.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Normalize returns the priority, defaulting to medium for unknown values.
func (p Priority) Normalize() Priority {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p
	}
	return PriorityMedium
}

// DocType is the kind of evidence a vendor submitted.
type DocType string

const (
	DocTypePackingList        DocType = "packing-list"
	DocTypeQualityCertificate DocType = "quality-certificate"
)

// PackingList reports whether the doc type names a packing list. Upload
// collaborators label documents with free text, so the check is a
// case-insensitive token match rather than an equality test.
func (d DocType) PackingList() bool {
	return strings.Contains(strings.ToLower(string(d)), "packing")
}

// Extraction holds the field values the extraction collaborator read out of
// the document. Absent fields mean the extractor could not find a value.
type Extraction struct {
	Quantity  *string `json:"quantity,omitempty"`
	Batch     *string `json:"batch,omitempty"`
	Packaging *string `json:"packaging,omitempty"`
	Purity    *string `json:"purity,omitempty"`
}

// AIInsights carries the extraction collaborator's assessment of a document.
// It is produced outside this core and read-only here.
type AIInsights struct {
	QualityScore float64    `json:"quality_score"`
	Flag         *string    `json:"flag,omitempty"`
	Extracted    Extraction `json:"extracted"`
}

// Document represents a vendor-submitted document awaiting or past review.
type Document struct {
	ID          uuid.UUID  `json:"id"`
	OrderID     string     `json:"order_id"`
	ProductID   string     `json:"product_id"`
	VendorID    string     `json:"vendor_id"`
	DocType     DocType    `json:"doc_type"`
	Filename    string     `json:"filename"`
	StorageKey  string     `json:"storage_key"`
	ContentType string     `json:"content_type"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	AIInsights  AIInsights `json:"ai_insights"`
	Fingerprint *string    `json:"fingerprint,omitempty"`
	AnchorRef   *string    `json:"anchor_ref,omitempty"`
	ReviewedBy  *string    `json:"reviewed_by,omitempty"`
	Comments    *string    `json:"comments,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TransitionCommand carries the decision fields persisted alongside a status
// change. From must match the document's current status at commit time; the
// update is a single compare-and-swap statement.
type TransitionCommand struct {
	From        Status
	To          Status
	ReviewedBy  string
	Comments    string
	Fingerprint string
	AnchorRef   string
}
