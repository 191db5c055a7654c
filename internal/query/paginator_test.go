package query

import (
	"testing"
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

func TestPaginate(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	candidates := make([]domain.Ticket, 0, 5)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		candidates = append(candidates, newTicket(id, domain.TicketStatusOpen, created, created.Add(time.Hour)))
	}

	cases := []struct {
		name      string
		page      int
		limit     int
		wantIDs   []string
		wantTotal int
		wantMore  bool
	}{
		{"first page", 1, 2, []string{"a", "b"}, 5, true},
		{"middle page", 2, 2, []string{"c", "d"}, 5, true},
		{"last partial page", 3, 2, []string{"e"}, 5, false},
		{"past the end", 4, 2, []string{}, 5, false},
		{"exact fit", 1, 5, []string{"a", "b", "c", "d", "e"}, 5, false},
		{"page clamped to one", 0, 2, []string{"a", "b"}, 5, true},
	}
	for _, tt := range cases {
		items, total, hasMore := Paginate(candidates, tt.page, tt.limit)
		if total != tt.wantTotal {
			t.Fatalf("%s: totalCount=%d, want %d", tt.name, total, tt.wantTotal)
		}
		if hasMore != tt.wantMore {
			t.Fatalf("%s: hasMore=%v, want %v", tt.name, hasMore, tt.wantMore)
		}
		if len(items) != len(tt.wantIDs) {
			t.Fatalf("%s: items=%v, want %v", tt.name, ticketIDs(items), tt.wantIDs)
		}
		for i, id := range ticketIDs(items) {
			if id != tt.wantIDs[i] {
				t.Fatalf("%s: items=%v, want %v", tt.name, ticketIDs(items), tt.wantIDs)
			}
		}
	}
}
