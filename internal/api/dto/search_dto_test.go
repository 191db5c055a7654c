package dto

import (
	"testing"

	"github.com/spec-kit/sla-engine/internal/domain"
)

func TestToSearchQuery(t *testing.T) {
	risk := "high"
	customer := "cust-1"
	req := SearchRequest{
		Query: "printer",
		Filters: SearchFilters{
			CustomerID: &customer,
			Statuses:   []string{"open", "in_progress"},
			Priorities: []string{"critical"},
			Tiers:      []string{"enterprise"},
			SLARisk:    &risk,
		},
		SortBy:          "slaDeadline",
		SortOrder:       "asc",
		Page:            2,
		Limit:           10,
		IncludeResolved: true,
	}

	q := req.ToSearchQuery()
	if q.Query != "printer" || q.Page != 2 || q.Limit != 10 || !q.IncludeResolved || q.IncludeClosed {
		t.Fatalf("query scalars mismapped: %+v", q)
	}
	if q.SortBy != domain.SortBySLADeadline || q.SortOrder != domain.SortAsc {
		t.Fatalf("sort=%s/%s, want slaDeadline/asc", q.SortBy, q.SortOrder)
	}
	if q.Filters.CustomerID == nil || *q.Filters.CustomerID != "cust-1" {
		t.Fatalf("customerID=%v, want cust-1", q.Filters.CustomerID)
	}
	if len(q.Filters.Statuses) != 2 || q.Filters.Statuses[0] != domain.TicketStatusOpen {
		t.Fatalf("statuses=%v, want typed open/in_progress", q.Filters.Statuses)
	}
	if len(q.Filters.Priorities) != 1 || q.Filters.Priorities[0] != domain.TicketPriorityCritical {
		t.Fatalf("priorities=%v, want critical", q.Filters.Priorities)
	}
	if len(q.Filters.Tiers) != 1 || q.Filters.Tiers[0] != domain.TierEnterprise {
		t.Fatalf("tiers=%v, want enterprise", q.Filters.Tiers)
	}
	if q.Filters.SLARisk == nil || *q.Filters.SLARisk != domain.RiskBucketHigh {
		t.Fatalf("slaRisk=%v, want high bucket", q.Filters.SLARisk)
	}
}
