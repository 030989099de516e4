package audit

import (
	"github.com/jmallard/countersign/pkg/query"
	"github.com/jmallard/countersign/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "audit_log", "a").
	Project("id", "ID").
	Project("action", "Action").
	Project("entity_type", "EntityType").
	Project("entity_id", "EntityID").
	Project("actor", "Actor").
	Project("details", "Details").
	Project("changes", "Changes").
	Project("recorded_at", "RecordedAt")

var defaultSort = query.SortField{
	Field:      "RecordedAt",
	Descending: true,
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	err := s.Scan(
		&e.ID,
		&e.Action,
		&e.EntityType,
		&e.EntityID,
		&e.Actor,
		&e.Details,
		&e.Changes,
		&e.RecordedAt,
	)
	return e, err
}
