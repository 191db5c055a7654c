package store

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// indexDef maps a secondary index name onto its key column and the column
// the index is ordered by.
type indexDef struct {
	keyColumn  string
	sortColumn string
}

var indexDefs = map[string]indexDef{
	IndexTechnician:  {keyColumn: AttrTechnicianID, sortColumn: AttrCreatedAt},
	IndexStatus:      {keyColumn: AttrStatus, sortColumn: AttrCreatedAt},
	IndexPriority:    {keyColumn: AttrPriority, sortColumn: AttrCreatedAt},
	IndexCategory:    {keyColumn: AttrCategory, sortColumn: AttrCreatedAt},
	IndexCustomer:    {keyColumn: AttrCustomerID, sortColumn: AttrCreatedAt},
	IndexSLADeadline: {sortColumn: AttrSLADeadline},
}

const selectColumns = "customer_id, ticket_id, title, description, category, customer_name, " +
	"priority, status, customer_tier, created_at, updated_at, sla_deadline, resolved_at, " +
	"assigned_technician_id, escalation_level, time_spent_minutes, resolution_time_minutes, " +
	"attachment_count, tags, external_id"

// PostgresClient implements Client on top of a pgx pool. Index names are
// translated to lookups over the correspondingly indexed columns; filter
// expressions become parameterized WHERE conjunctions.
type PostgresClient struct {
	pool *pgxpool.Pool
}

// NewPostgresClient builds a store client backed by postgres.
func NewPostgresClient(pool *pgxpool.Pool) *PostgresClient {
	return &PostgresClient{pool: pool}
}

// Query executes one indexed lookup.
func (c *PostgresClient) Query(ctx context.Context, in QueryInput) (Page, error) {
	def, ok := indexDefs[in.Index]
	if !ok {
		return Page{}, fmt.Errorf("unknown index %q", in.Index)
	}

	clauses := []string{}
	args := []any{}
	if in.Key != nil && def.keyColumn != "" {
		args = append(args, in.Key.Value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", def.keyColumn, len(args)))
	}
	clauses, args = appendExpression(clauses, args, in.Filter)

	direction := "DESC"
	if in.Ascending {
		direction = "ASC"
	}
	query := fmt.Sprintf("SELECT %s FROM tickets", selectColumns)
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT %d", def.sortColumn, direction, in.Limit+1)

	return c.fetchPage(ctx, query, args, in.Limit)
}

// Scan executes one table scan, optionally with a native filter.
func (c *PostgresClient) Scan(ctx context.Context, in ScanInput) (Page, error) {
	clauses := []string{}
	args := []any{}
	clauses, args = appendExpression(clauses, args, in.Filter)

	query := fmt.Sprintf("SELECT %s FROM tickets", selectColumns)
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY customer_id, ticket_id LIMIT %d", in.Limit+1)

	return c.fetchPage(ctx, query, args, in.Limit)
}

// fetchPage requests one extra row beyond the limit to decide whether a
// continuation cursor should be emitted.
func (c *PostgresClient) fetchPage(ctx context.Context, query string, args []any, limit int) (Page, error) {
	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return Page{}, err
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return Page{}, err
	}

	page := Page{Items: records}
	if limit > 0 && len(records) > limit {
		page.Items = records[:limit]
		page.Cursor = encodeCursor(limit)
	}
	return page, nil
}

func appendExpression(clauses []string, args []any, expr Expression) ([]string, []any) {
	for _, cond := range expr.All {
		clauses, args = appendCondition(clauses, args, cond)
	}
	if len(expr.Any) > 0 {
		parts := []string{}
		for _, cond := range expr.Any {
			var sub []string
			sub, args = appendCondition(nil, args, cond)
			parts = append(parts, sub...)
		}
		clauses = append(clauses, "("+strings.Join(parts, " OR ")+")")
	}
	return clauses, args
}

func appendCondition(clauses []string, args []any, cond Condition) ([]string, []any) {
	switch cond.Op {
	case OpEq:
		args = append(args, cond.Value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", cond.Attribute, len(args)))
	case OpIn:
		placeholders := make([]string, len(cond.Values))
		for i, value := range cond.Values {
			args = append(args, value)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("%s IN (%s)", cond.Attribute, strings.Join(placeholders, ",")))
	case OpGt, OpGte, OpLt, OpLte:
		args = append(args, cond.Value)
		clauses = append(clauses, fmt.Sprintf("%s %s $%d", cond.Attribute, sqlComparator(cond.Op), len(args)))
	case OpContains:
		args = append(args, cond.Value)
		clauses = append(clauses, fmt.Sprintf("$%d = ANY(%s)", len(args), cond.Attribute))
	}
	return clauses, args
}

func sqlComparator(op Operator) string {
	switch op {
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpLt:
		return "<"
	default:
		return "<="
	}
}

func scanRecords(rows pgx.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var (
			rec            = Record{}
			customerID     string
			ticketID       string
			title          string
			description    string
			category       string
			customerName   string
			priority       string
			status         string
			tier           string
			createdAt      any
			updatedAt      any
			slaDeadline    any
			resolvedAt     any
			technicianID   *string
			escalation     int
			timeSpent      int
			resolutionTime *int
			attachments    int
			tags           []string
			externalID     string
		)
		if err := rows.Scan(
			&customerID, &ticketID, &title, &description, &category, &customerName,
			&priority, &status, &tier, &createdAt, &updatedAt, &slaDeadline, &resolvedAt,
			&technicianID, &escalation, &timeSpent, &resolutionTime, &attachments,
			&tags, &externalID,
		); err != nil {
			return nil, err
		}
		rec[AttrCustomerID] = customerID
		rec[AttrTicketID] = ticketID
		rec[AttrTitle] = title
		rec[AttrDescription] = description
		rec[AttrCategory] = category
		rec[AttrCustomerName] = customerName
		rec[AttrPriority] = priority
		rec[AttrStatus] = status
		rec[AttrCustomerTier] = tier
		rec[AttrCreatedAt] = createdAt
		rec[AttrUpdatedAt] = updatedAt
		rec[AttrSLADeadline] = slaDeadline
		rec[AttrResolvedAt] = resolvedAt
		if technicianID != nil {
			rec[AttrTechnicianID] = *technicianID
		}
		rec[AttrEscalation] = escalation
		rec[AttrTimeSpent] = timeSpent
		if resolutionTime != nil {
			rec[AttrResolutionTime] = *resolutionTime
		}
		rec[AttrAttachments] = attachments
		rec[AttrTags] = tags
		rec[AttrExternalID] = externalID
		records = append(records, rec)
	}
	return records, rows.Err()
}

func encodeCursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte("offset:" + strconv.Itoa(offset)))
}
