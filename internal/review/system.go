package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/jmallard/countersign/internal/audit"
	"github.com/jmallard/countersign/pkg/pagination"
)

// System defines the review pipeline contract.
type System interface {
	Handler() *Handler

	// Queue lists pending documents, newest first, with priority surfaced.
	Queue(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[QueueItem], error)

	// Summary assembles the document, its order context, and the three-way
	// match result for reviewer presentation.
	Summary(ctx context.Context, id uuid.UUID) (*Summary, error)

	// Approve runs the full approval pipeline. On any failure before the
	// commit, the document remains pending and no anchor is attached.
	Approve(ctx context.Context, cmd ApproveCommand) (*Decision, error)

	// Reject commits a rejection. Comments are mandatory.
	Reject(ctx context.Context, cmd RejectCommand) (*Decision, error)

	// Trail returns the audit entries recorded for a document.
	Trail(ctx context.Context, id uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[audit.Entry], error)
}
