package documents

import (
	"net/url"

	"github.com/jmallard/countersign/pkg/query"
	"github.com/jmallard/countersign/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "documents", "d").
	Project("id", "ID").
	Project("order_id", "OrderID").
	Project("product_id", "ProductID").
	Project("vendor_id", "VendorID").
	Project("doc_type", "DocType").
	Project("filename", "Filename").
	Project("storage_key", "StorageKey").
	Project("content_type", "ContentType").
	Project("status", "Status").
	Project("priority", "Priority").
	Project("quality_score", "QualityScore").
	Project("ai_flag", "AIFlag").
	Project("extracted_quantity", "ExtractedQuantity").
	Project("extracted_batch", "ExtractedBatch").
	Project("extracted_packaging", "ExtractedPackaging").
	Project("extracted_purity", "ExtractedPurity").
	Project("fingerprint", "Fingerprint").
	Project("anchor_ref", "AnchorRef").
	Project("reviewed_by", "ReviewedBy").
	Project("comments", "Comments").
	Project("reviewed_at", "ReviewedAt").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for document queries.
// Nil fields are ignored. Status, VendorID, DocType, and Priority use exact
// matching; Filename uses case-insensitive contains matching.
type Filters struct {
	Status   *string `json:"status,omitempty"`
	VendorID *string `json:"vendor_id,omitempty"`
	DocType  *string `json:"doc_type,omitempty"`
	Priority *string `json:"priority,omitempty"`
	OrderID  *string `json:"order_id,omitempty"`
	Filename *string `json:"filename,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereEquals("VendorID", f.VendorID).
		WhereEquals("DocType", f.DocType).
		WhereEquals("Priority", f.Priority).
		WhereEquals("OrderID", f.OrderID).
		WhereContains("Filename", f.Filename)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}
	if v := values.Get("vendor_id"); v != "" {
		f.VendorID = &v
	}
	if d := values.Get("doc_type"); d != "" {
		f.DocType = &d
	}
	if p := values.Get("priority"); p != "" {
		f.Priority = &p
	}
	if o := values.Get("order_id"); o != "" {
		f.OrderID = &o
	}
	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	return f
}

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.OrderID,
		&d.ProductID,
		&d.VendorID,
		&d.DocType,
		&d.Filename,
		&d.StorageKey,
		&d.ContentType,
		&d.Status,
		&d.Priority,
		&d.AIInsights.QualityScore,
		&d.AIInsights.Flag,
		&d.AIInsights.Extracted.Quantity,
		&d.AIInsights.Extracted.Batch,
		&d.AIInsights.Extracted.Packaging,
		&d.AIInsights.Extracted.Purity,
		&d.Fingerprint,
		&d.AnchorRef,
		&d.ReviewedBy,
		&d.Comments,
		&d.ReviewedAt,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}
