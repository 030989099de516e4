package evidence

import "context"

// System defines the read-only query surface over reference records.
type System interface {
	Handler() *Handler

	FindOrder(ctx context.Context, id string) (*Order, error)
	FindProduct(ctx context.Context, id string) (*Product, error)
	ListStandards(ctx context.Context) ([]MasterStandard, error)

	// FindApprovedStandard returns the APPROVED master standard for the
	// product and document type pair, or ErrNoStandard if none exists.
	FindApprovedStandard(ctx context.Context, productID, docType string) (*MasterStandard, error)
}
