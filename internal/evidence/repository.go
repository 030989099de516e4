package evidence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmallard/countersign/pkg/query"
	"github.com/jmallard/countersign/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates an evidence repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "evidence"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) FindOrder(ctx context.Context, id string) (*Order, error) {
	q, args := query.NewBuilder(orderProjection).BuildSingle("ID", id)

	o, err := repository.QueryOne(ctx, r.db, q, args, scanOrder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("query order: %w", err)
	}
	return &o, nil
}

func (r *repo) FindProduct(ctx context.Context, id string) (*Product, error) {
	q, args := query.NewBuilder(productProjection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanProduct)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}

func (r *repo) ListStandards(ctx context.Context) ([]MasterStandard, error) {
	q, args := query.NewBuilder(standardProjection, standardSort).Build()

	standards, err := repository.QueryMany(ctx, r.db, q, args, scanStandard)
	if err != nil {
		return nil, fmt.Errorf("query master standards: %w", err)
	}
	return standards, nil
}

func (r *repo) FindApprovedStandard(ctx context.Context, productID, docType string) (*MasterStandard, error) {
	status := StandardApproved
	q, args := query.
		NewBuilder(standardProjection, standardSort).
		WhereEquals("ProductID", &productID).
		WhereEquals("DocType", &docType).
		WhereEquals("Status", &status).
		BuildPage(1, 1)

	standards, err := repository.QueryMany(ctx, r.db, q, args, scanStandard)
	if err != nil {
		return nil, fmt.Errorf("query approved standard: %w", err)
	}
	if len(standards) == 0 {
		return nil, ErrNoStandard
	}
	return &standards[0], nil
}
