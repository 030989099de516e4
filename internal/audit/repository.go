package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jmallard/countersign/pkg/pagination"
	"github.com/jmallard/countersign/pkg/query"
	"github.com/jmallard/countersign/pkg/repository"
)

type store struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

func (s *store) Append(ctx context.Context, entry Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}

	// The audit_log table has no update or delete path anywhere in this
	// codebase; this INSERT is the only statement that touches it.
	err := repository.ExecExpectOne(ctx, s.db, `
		INSERT INTO audit_log (id, action, entity_type, entity_id, actor, details, changes, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.Actor,
		entry.Details,
		nullableJSON(entry.Changes),
		entry.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

func (s *store) List(
	ctx context.Context,
	entityType, entityID string,
	page pagination.PageRequest,
) (*pagination.PageResult[Entry], error) {
	page.Normalize(s.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("EntityType", &entityType).
		WhereEquals("EntityID", &entityID)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count audit entries: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	entries, err := repository.QueryMany(ctx, s.db, pageSQL, pageArgs, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}

	result := pagination.NewPageResult(entries, total, page.Page, page.PageSize)
	return &result, nil
}

func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
