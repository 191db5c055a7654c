package store

import "context"

// Secondary index names known to the store. IndexSLADeadline carries no
// partition key; it is a deadline-ordered range over the whole table.
const (
	IndexTechnician  = "technician-index"
	IndexStatus      = "status-index"
	IndexPriority    = "priority-index"
	IndexCategory    = "category-index"
	IndexCustomer    = "customer-index"
	IndexSLADeadline = "sla-deadline-index"
)

// Record is a raw document as returned by the store.
type Record map[string]any

// Page is a bounded result set plus an opaque continuation cursor. The
// cursor is forwarded to callers unchanged; the engine never resumes a
// query on its own.
type Page struct {
	Items  []Record
	Cursor string
}

// Operator enumerates predicate shapes the store can evaluate natively.
type Operator string

const (
	OpEq       Operator = "eq"
	OpIn       Operator = "in"
	OpGt       Operator = "gt"
	OpGte      Operator = "gte"
	OpLt       Operator = "lt"
	OpLte      Operator = "lte"
	OpContains Operator = "contains"
)

// Condition is a single attribute predicate.
type Condition struct {
	Attribute string
	Op        Operator
	Value     any
	Values    []any
}

// Expression is a store-native filter: every condition in All must hold,
// and, when Any is non-empty, at least one condition in Any must hold.
type Expression struct {
	All []Condition
	Any []Condition
}

// IsEmpty reports whether the expression constrains nothing.
func (e Expression) IsEmpty() bool {
	return len(e.All) == 0 && len(e.Any) == 0
}

// QueryInput describes one indexed query.
type QueryInput struct {
	Index     string
	Key       *Condition
	Filter    Expression
	Limit     int
	Ascending bool
}

// ScanInput describes one unfiltered or filter-expression scan.
type ScanInput struct {
	Filter Expression
	Limit  int
}

// Client is the narrow document-store contract the engine consumes. Both
// calls are bounded by Limit and may return fewer items than requested;
// failures are returned unchanged with no retry.
type Client interface {
	Query(ctx context.Context, in QueryInput) (Page, error)
	Scan(ctx context.Context, in ScanInput) (Page, error)
}
