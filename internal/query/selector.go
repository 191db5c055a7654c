package query

import (
	"github.com/spec-kit/sla-engine/internal/domain"
	"github.com/spec-kit/sla-engine/internal/store"
)

// Selection names the secondary index to query and the key predicate it
// consumes. A nil Selection means no index matched and a scan is required.
type Selection struct {
	Index string
	Key   store.Condition
}

// SelectIndex chooses at most one secondary index for the given filter set.
// The chain is fixed, most-selective-first, and only the first matching rule
// fires. Multi-value filters never select an index; they degrade to the
// filter expression or the post-filter.
func SelectIndex(filters domain.SearchFilters, sortBy domain.SortField) *Selection {
	if filters.AssignedTechnicianID != nil {
		return &Selection{
			Index: store.IndexTechnician,
			Key:   store.Condition{Attribute: store.AttrTechnicianID, Op: store.OpEq, Value: *filters.AssignedTechnicianID},
		}
	}
	if len(filters.Statuses) == 1 {
		return &Selection{
			Index: store.IndexStatus,
			Key:   store.Condition{Attribute: store.AttrStatus, Op: store.OpEq, Value: string(filters.Statuses[0])},
		}
	}
	if len(filters.Priorities) == 1 {
		return &Selection{
			Index: store.IndexPriority,
			Key:   store.Condition{Attribute: store.AttrPriority, Op: store.OpEq, Value: string(filters.Priorities[0])},
		}
	}
	if len(filters.Categories) == 1 {
		return &Selection{
			Index: store.IndexCategory,
			Key:   store.Condition{Attribute: store.AttrCategory, Op: store.OpEq, Value: filters.Categories[0]},
		}
	}
	if filters.CustomerID != nil {
		return &Selection{
			Index: store.IndexCustomer,
			Key:   store.Condition{Attribute: store.AttrCustomerID, Op: store.OpEq, Value: *filters.CustomerID},
		}
	}
	if sortBy == domain.SortBySLADeadline {
		return &Selection{Index: store.IndexSLADeadline}
	}
	return nil
}
