package documents

import (
	"context"

	"github.com/google/uuid"

	"github.com/jmallard/countersign/pkg/pagination"
)

// System defines the public contract for document domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Document], error)

	Find(ctx context.Context, id uuid.UUID) (*Document, error)

	// Transition commits a status change as a single compare-and-swap update.
	// It returns ErrInvalidTransition if the document's status no longer
	// matches cmd.From at commit time.
	Transition(ctx context.Context, id uuid.UUID, cmd TransitionCommand) (*Document, error)
}
