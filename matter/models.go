package matter

import (
	"time"

	"matterflow/field"
	"matterflow/sla"
	"matterflow/workflow"
)

// Matter is a legal matter (ticket) tracked through the board workflow.
// CycleTime and SLA are derived on every read and never persisted.
type Matter struct {
	ID        string
	BoardID   string
	Fields    field.Set
	CreatedAt time.Time
	UpdatedAt time.Time

	// CycleTime is nil when the matter has no transition history.
	CycleTime *workflow.CycleTime
	SLA       sla.Status
}

// ListFilters narrows a board listing before enrichment and sorting.
type ListFilters struct {
	BoardID string
	// Search is a case-insensitive substring match over the matter's
	// precomputed search text; empty means no filtering.
	Search string
}

// ListParams carries the caller-supplied listing controls. SortKey is either
// a reserved meta key or a field name; unrecognized values simply sort as
// absent fields.
type ListParams struct {
	BoardID   string
	Search    string
	SortKey   string
	Direction Direction
	Page      int
	PageSize  int
}

// ListResult is one page of enriched matters plus the pre-pagination total.
type ListResult struct {
	Items    []Matter
	Total    int
	Page     int
	PageSize int
}
