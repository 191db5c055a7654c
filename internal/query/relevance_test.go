package query

import (
	"testing"
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

func TestRankByRelevanceTitlePrefixBeatsDescription(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	titleMatch := domain.Ticket{
		CustomerID: "c1", TicketID: "t1", CreatedAt: created,
		Title: "Printer offline in building 3",
	}
	descMatch := domain.Ticket{
		CustomerID: "c1", TicketID: "t2", CreatedAt: created,
		Title:       "Hardware issue",
		Description: "the shared printer stopped responding",
	}

	scored := RankByRelevance([]domain.Ticket{descMatch, titleMatch}, "printer")
	if len(scored) != 2 {
		t.Fatalf("scored=%d tickets, want 2", len(scored))
	}
	if scored[0].Ticket.TicketID != "t1" {
		t.Fatalf("first=%s, want title match t1", scored[0].Ticket.TicketID)
	}
	if scored[0].Score <= scored[1].Score {
		t.Fatalf("scores %v <= %v, want title prefix to outrank description substring",
			scored[0].Score, scored[1].Score)
	}
}

func TestRankByRelevanceDropsZeroScores(t *testing.T) {
	tickets := []domain.Ticket{
		{CustomerID: "c1", TicketID: "t1", Title: "VPN down"},
		{CustomerID: "c1", TicketID: "t2", Title: "Password reset"},
	}
	scored := RankByRelevance(tickets, "vpn")
	if len(scored) != 1 || scored[0].Ticket.TicketID != "t1" {
		t.Fatalf("scored=%v, want only t1", scored)
	}
}

func TestRankByRelevanceEmptyQueryPassesThrough(t *testing.T) {
	tickets := []domain.Ticket{
		{CustomerID: "c1", TicketID: "t1"},
		{CustomerID: "c1", TicketID: "t2"},
	}
	scored := RankByRelevance(tickets, "   ")
	if len(scored) != 2 {
		t.Fatalf("scored=%d tickets, want passthrough of all", len(scored))
	}
	for i, s := range scored {
		if s.Ticket.TicketID != tickets[i].TicketID {
			t.Fatalf("order changed at %d: got %s", i, s.Ticket.TicketID)
		}
		if s.Score != 0 {
			t.Fatalf("passthrough score=%v, want 0", s.Score)
		}
	}
}

func TestRankByRelevanceFieldWeights(t *testing.T) {
	cases := []struct {
		name   string
		ticket domain.Ticket
		query  string
		want   float64
	}{
		{"title prefix", domain.Ticket{Title: "network outage"}, "network", 10},
		{"title substring", domain.Ticket{Title: "core network outage"}, "network", 5},
		{"customer prefix", domain.Ticket{CustomerName: "Acme Corp"}, "acme", 8},
		{"tag exact", domain.Ticket{Tags: []string{"vpn"}}, "vpn", 6},
		{"tag substring", domain.Ticket{Tags: []string{"vpn-gateway"}}, "vpn", 3},
		{"external id", domain.Ticket{ExternalID: "JIRA-4521"}, "4521", 7},
		{"description", domain.Ticket{Description: "user cannot log in"}, "cannot", 2},
	}
	for _, tt := range cases {
		scored := RankByRelevance([]domain.Ticket{tt.ticket}, tt.query)
		if len(scored) != 1 {
			t.Fatalf("%s: ticket dropped", tt.name)
		}
		if scored[0].Score != tt.want {
			t.Fatalf("%s: score=%v, want %v", tt.name, scored[0].Score, tt.want)
		}
	}
}

func TestRankByRelevanceMultiTermAccumulates(t *testing.T) {
	ticket := domain.Ticket{
		Title:       "VPN outage",
		Description: "complete outage of the vpn concentrator",
	}
	scored := RankByRelevance([]domain.Ticket{ticket}, "vpn outage")
	if len(scored) != 1 {
		t.Fatal("ticket dropped")
	}
	// vpn: title prefix 10 + description 2; outage: title substring 5 + description 2
	if scored[0].Score != 19 {
		t.Fatalf("score=%v, want 19", scored[0].Score)
	}
}
