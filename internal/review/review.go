// Package review implements the decision pipeline for pending documents. An
// approval authenticates the reviewer, fingerprints the evidence, anchors the
// fingerprint to the ledger, and commits the status change as a single guarded
// update. A rejection requires a documented reason but no credential.
package review

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmallard/countersign/internal/documents"
	"github.com/jmallard/countersign/internal/match"
	"github.com/jmallard/countersign/internal/signature"
)

// ApproveCommand carries an approval request.
type ApproveCommand struct {
	DocumentID uuid.UUID `json:"-"`
	Reviewer   string    `json:"reviewer"`
	Credential string    `json:"credential"`
	Comments   string    `json:"comments"`
}

// RejectCommand carries a rejection request. Comments are mandatory.
type RejectCommand struct {
	DocumentID uuid.UUID `json:"-"`
	Reviewer   string    `json:"reviewer"`
	Comments   string    `json:"comments"`
}

// Decision is the outcome of a committed review.
type Decision struct {
	Document    documents.Document `json:"document"`
	Outcome     documents.Status   `json:"outcome"`
	Reviewer    string             `json:"reviewer"`
	OrderNumber string             `json:"order_number,omitempty"`
	Fingerprint string             `json:"fingerprint,omitempty"`
	AnchorRef   string             `json:"anchor_ref,omitempty"`
	Proof       *signature.Proof   `json:"proof,omitempty"`
	DecidedAt   time.Time          `json:"decided_at"`
}

// QueueItem is one pending document in the review queue with its extraction
// risk tier surfaced for triage.
type QueueItem struct {
	Document documents.Document `json:"document"`
	Risk     match.RiskTier     `json:"risk"`
}

// Summary is the reviewer-facing view of a pending document: the document,
// its order context, and the three-way match outcome.
type Summary struct {
	Document documents.Document `json:"document"`
	Order    *OrderContext      `json:"order,omitempty"`
	Match    *match.Summary     `json:"match,omitempty"`
	Standard *StandardContext   `json:"standard,omitempty"`
}

// OrderContext is the slice of order data shown alongside a document.
type OrderContext struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
	ProductID   string `json:"product_id"`
}

// StandardContext identifies the approved standard a document was matched
// against.
type StandardContext struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}
