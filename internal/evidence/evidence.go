// Package evidence provides read-only access to the reference records a
// review decision is checked against: orders, products, and master standards.
package evidence

import (
	"time"

	"github.com/google/uuid"
)

// Order is immutable reference data describing what a vendor was asked to
// supply. Expected values feed the match engine; this service never writes
// orders.
type Order struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	OrderNumber  string `json:"order_number"`
	Quantity     string `json:"quantity"`
	Batch        string `json:"batch"`
	PackagingReq string `json:"packaging_req"`
	QualityReq   string `json:"quality_req"`
}

type Product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// StandardStatus values for master standards. Only APPROVED standards are
// authoritative for matching.
const (
	StandardApproved = "APPROVED"
	StandardDraft    = "DRAFT"
	StandardRetired  = "RETIRED"
)

// MasterStandard is the approved requirement text for a product and document
// type pair. At most one APPROVED standard should exist per pair.
type MasterStandard struct {
	ID          uuid.UUID `json:"id"`
	ProductID   string    `json:"product_id"`
	DocType     string    `json:"doc_type"`
	Title       string    `json:"title"`
	Requirement string    `json:"requirement"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
