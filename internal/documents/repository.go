package documents

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jmallard/countersign/pkg/pagination"
	"github.com/jmallard/countersign/pkg/query"
	"github.com/jmallard/countersign/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a document repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "documents"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Document], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Filename", "OrderID", "VendorID")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	docs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	result := pagination.NewPageResult(docs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) Transition(ctx context.Context, id uuid.UUID, cmd TransitionCommand) (*Document, error) {
	if !cmd.To.Terminal() || cmd.From != StatusPendingReview {
		return nil, ErrInvalidTransition
	}

	// The pre-change status check is part of the UPDATE itself, so two racing
	// decisions can never both observe PENDING_REVIEW at commit time.
	q := `
		UPDATE documents
		SET status = $1,
			reviewed_by = $2,
			comments = NULLIF($3, ''),
			fingerprint = NULLIF($4, ''),
			anchor_ref = NULLIF($5, ''),
			reviewed_at = NOW(),
			updated_at = NOW()
		WHERE id = $6 AND status = $7
		RETURNING id, order_id, product_id, vendor_id, doc_type, filename,
				  storage_key, content_type, status, priority, quality_score,
				  ai_flag, extracted_quantity, extracted_batch,
				  extracted_packaging, extracted_purity, fingerprint,
				  anchor_ref, reviewed_by, comments, reviewed_at, created_at,
				  updated_at`

	args := []any{
		string(cmd.To),
		cmd.ReviewedBy,
		cmd.Comments,
		cmd.Fingerprint,
		cmd.AnchorRef,
		id,
		string(cmd.From),
	}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, args, scanDocument)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrInvalidTransition, ErrDuplicate)
	}

	r.logger.Info("document transitioned",
		"id", d.ID,
		"status", d.Status,
		"reviewed_by", cmd.ReviewedBy,
	)
	return &d, nil
}
