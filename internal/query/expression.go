package query

import (
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
	"github.com/spec-kit/sla-engine/internal/store"
)

// BuildExpression compiles every filter predicate not already consumed by
// the selected index into a store-native conjunction. Predicates the store
// cannot evaluate (risk bucket, overdue, the exclusion toggles) are omitted
// here and handled by the post-filter.
func BuildExpression(filters domain.SearchFilters, sel *Selection) store.Expression {
	var expr store.Expression
	consumed := ""
	if sel != nil {
		consumed = sel.Key.Attribute
	}

	if filters.CustomerID != nil && consumed != store.AttrCustomerID {
		expr.All = append(expr.All, store.Condition{
			Attribute: store.AttrCustomerID, Op: store.OpEq, Value: *filters.CustomerID,
		})
	}
	if filters.AssignedTechnicianID != nil && consumed != store.AttrTechnicianID {
		expr.All = append(expr.All, store.Condition{
			Attribute: store.AttrTechnicianID, Op: store.OpEq, Value: *filters.AssignedTechnicianID,
		})
	}
	if cond, ok := membership(store.AttrStatus, statusValues(filters.Statuses)); ok && consumed != store.AttrStatus {
		expr.All = append(expr.All, cond)
	}
	if cond, ok := membership(store.AttrPriority, priorityValues(filters.Priorities)); ok && consumed != store.AttrPriority {
		expr.All = append(expr.All, cond)
	}
	if cond, ok := membership(store.AttrCategory, stringValues(filters.Categories)); ok && consumed != store.AttrCategory {
		expr.All = append(expr.All, cond)
	}
	if cond, ok := membership(store.AttrCustomerTier, tierValues(filters.Tiers)); ok {
		expr.All = append(expr.All, cond)
	}
	if cond, ok := membership(store.AttrEscalation, intValues(filters.EscalationLevels)); ok {
		expr.All = append(expr.All, cond)
	}

	expr.All = appendRange(expr.All, store.AttrCreatedAt, timeValue(filters.CreatedAfter), timeValue(filters.CreatedBefore))
	expr.All = appendRange(expr.All, store.AttrUpdatedAt, timeValue(filters.UpdatedAfter), timeValue(filters.UpdatedBefore))
	expr.All = appendRange(expr.All, store.AttrTimeSpent, intValue(filters.TimeSpentMin), intValue(filters.TimeSpentMax))
	expr.All = appendRange(expr.All, store.AttrResolutionTime, intValue(filters.ResolutionTimeMin), intValue(filters.ResolutionTimeMax))

	for _, tag := range filters.Tags {
		expr.Any = append(expr.Any, store.Condition{
			Attribute: store.AttrTags, Op: store.OpContains, Value: tag,
		})
	}

	if filters.HasAttachments != nil {
		if *filters.HasAttachments {
			expr.All = append(expr.All, store.Condition{
				Attribute: store.AttrAttachments, Op: store.OpGt, Value: 0,
			})
		} else {
			expr.All = append(expr.All, store.Condition{
				Attribute: store.AttrAttachments, Op: store.OpEq, Value: 0,
			})
		}
	}

	return expr
}

// membership collapses a value list to an equality for one value and an
// IN-list for several.
func membership(attribute string, values []any) (store.Condition, bool) {
	switch len(values) {
	case 0:
		return store.Condition{}, false
	case 1:
		return store.Condition{Attribute: attribute, Op: store.OpEq, Value: values[0]}, true
	default:
		return store.Condition{Attribute: attribute, Op: store.OpIn, Values: values}, true
	}
}

// appendRange adds half-open bounds: lower inclusive, upper exclusive.
func appendRange(conds []store.Condition, attribute string, lower, upper any) []store.Condition {
	if lower != nil {
		conds = append(conds, store.Condition{Attribute: attribute, Op: store.OpGte, Value: lower})
	}
	if upper != nil {
		conds = append(conds, store.Condition{Attribute: attribute, Op: store.OpLt, Value: upper})
	}
	return conds
}

func statusValues(statuses []domain.TicketStatus) []any {
	out := make([]any, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

func priorityValues(priorities []domain.TicketPriority) []any {
	out := make([]any, 0, len(priorities))
	for _, p := range priorities {
		out = append(out, string(p))
	}
	return out
}

func tierValues(tiers []domain.CustomerTier) []any {
	out := make([]any, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, string(t))
	}
	return out
}

func stringValues(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func intValues(values []int) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func timeValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func intValue(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
