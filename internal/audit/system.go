package audit

import (
	"context"

	"github.com/jmallard/countersign/pkg/pagination"
)

// System defines the audit trail contract.
type System interface {
	// Append writes an entry synchronously.
	Append(ctx context.Context, entry Entry) error

	// Record queues an entry for background delivery. It never blocks the
	// caller and never returns an error; failed deliveries are reported on
	// Failures.
	Record(entry Entry)

	// Failures delivers entries that could not be appended.
	Failures() <-chan DeliveryFailure

	List(
		ctx context.Context,
		entityType, entityID string,
		page pagination.PageRequest,
	) (*pagination.PageResult[Entry], error)
}
