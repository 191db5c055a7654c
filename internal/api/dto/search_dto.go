package dto

import (
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// SearchRequest is the JSON body of a search call.
type SearchRequest struct {
	Query           string        `json:"query"`
	Filters         SearchFilters `json:"filters"`
	SortBy          string        `json:"sort_by"`
	SortOrder       string        `json:"sort_order"`
	Page            int           `json:"page"`
	Limit           int           `json:"limit"`
	IncludeResolved bool          `json:"include_resolved"`
	IncludeClosed   bool          `json:"include_closed"`
}

// SearchFilters mirrors the structured filter set.
type SearchFilters struct {
	CustomerID           *string    `json:"customer_id"`
	AssignedTechnicianID *string    `json:"assigned_technician_id"`
	Statuses             []string   `json:"statuses"`
	Priorities           []string   `json:"priorities"`
	Categories           []string   `json:"categories"`
	Tiers                []string   `json:"tiers"`
	Tags                 []string   `json:"tags"`
	EscalationLevels     []int      `json:"escalation_levels"`
	CreatedAfter         *time.Time `json:"created_after"`
	CreatedBefore        *time.Time `json:"created_before"`
	UpdatedAfter         *time.Time `json:"updated_after"`
	UpdatedBefore        *time.Time `json:"updated_before"`
	TimeSpentMin         *int       `json:"time_spent_min"`
	TimeSpentMax         *int       `json:"time_spent_max"`
	ResolutionTimeMin    *int       `json:"resolution_time_min"`
	ResolutionTimeMax    *int       `json:"resolution_time_max"`
	HasAttachments       *bool      `json:"has_attachments"`
	SLARisk              *string    `json:"sla_risk"`
	Overdue              *bool      `json:"overdue"`
}

// SearchResponse is one page of results.
type SearchResponse struct {
	Tickets    []TicketSummary `json:"tickets"`
	TotalCount int             `json:"total_count"`
	HasMore    bool            `json:"has_more"`
	Cursor     string          `json:"cursor,omitempty"`
}

// TicketSummary is the outward ticket projection.
type TicketSummary struct {
	CustomerID           string    `json:"customer_id"`
	TicketID             string    `json:"ticket_id"`
	Title                string    `json:"title"`
	Category             string    `json:"category"`
	CustomerName         string    `json:"customer_name"`
	Priority             string    `json:"priority"`
	Status               string    `json:"status"`
	CustomerTier         string    `json:"customer_tier"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
	SLADeadline          time.Time `json:"sla_deadline"`
	AssignedTechnicianID *string   `json:"assigned_technician_id,omitempty"`
	EscalationLevel      int       `json:"escalation_level"`
	TimeSpentMinutes     int       `json:"time_spent_minutes"`
	Tags                 []string  `json:"tags"`
	ExternalID           string    `json:"external_id,omitempty"`
}

// ToSearchQuery maps the request onto the domain query.
func (r SearchRequest) ToSearchQuery() domain.SearchQuery {
	return domain.SearchQuery{
		Query:           r.Query,
		Filters:         r.Filters.toDomain(),
		SortBy:          domain.SortField(r.SortBy),
		SortOrder:       domain.SortOrder(r.SortOrder),
		Page:            r.Page,
		Limit:           r.Limit,
		IncludeResolved: r.IncludeResolved,
		IncludeClosed:   r.IncludeClosed,
	}
}

func (f SearchFilters) toDomain() domain.SearchFilters {
	filters := domain.SearchFilters{
		CustomerID:           f.CustomerID,
		AssignedTechnicianID: f.AssignedTechnicianID,
		Categories:           f.Categories,
		Tags:                 f.Tags,
		EscalationLevels:     f.EscalationLevels,
		CreatedAfter:         f.CreatedAfter,
		CreatedBefore:        f.CreatedBefore,
		UpdatedAfter:         f.UpdatedAfter,
		UpdatedBefore:        f.UpdatedBefore,
		TimeSpentMin:         f.TimeSpentMin,
		TimeSpentMax:         f.TimeSpentMax,
		ResolutionTimeMin:    f.ResolutionTimeMin,
		ResolutionTimeMax:    f.ResolutionTimeMax,
		HasAttachments:       f.HasAttachments,
		Overdue:              f.Overdue,
	}
	for _, status := range f.Statuses {
		filters.Statuses = append(filters.Statuses, domain.TicketStatus(status))
	}
	for _, priority := range f.Priorities {
		filters.Priorities = append(filters.Priorities, domain.TicketPriority(priority))
	}
	for _, tier := range f.Tiers {
		filters.Tiers = append(filters.Tiers, domain.CustomerTier(tier))
	}
	if f.SLARisk != nil {
		bucket := domain.RiskBucket(*f.SLARisk)
		filters.SLARisk = &bucket
	}
	return filters
}

// FromSearchResult maps a domain result to the response shape.
func FromSearchResult(result domain.SearchResult) SearchResponse {
	resp := SearchResponse{
		Tickets:    make([]TicketSummary, 0, len(result.Tickets)),
		TotalCount: result.TotalCount,
		HasMore:    result.HasMore,
		Cursor:     result.Cursor,
	}
	for _, ticket := range result.Tickets {
		resp.Tickets = append(resp.Tickets, FromTicket(ticket))
	}
	return resp
}

// FromTicket maps one ticket to its summary projection.
func FromTicket(ticket domain.Ticket) TicketSummary {
	return TicketSummary{
		CustomerID:           ticket.CustomerID,
		TicketID:             ticket.TicketID,
		Title:                ticket.Title,
		Category:             ticket.Category,
		CustomerName:         ticket.CustomerName,
		Priority:             string(ticket.Priority),
		Status:               string(ticket.Status),
		CustomerTier:         string(ticket.CustomerTier),
		CreatedAt:            ticket.CreatedAt,
		UpdatedAt:            ticket.UpdatedAt,
		SLADeadline:          ticket.SLADeadline,
		AssignedTechnicianID: ticket.AssignedTechnicianID,
		EscalationLevel:      ticket.EscalationLevel,
		TimeSpentMinutes:     ticket.TimeSpentMinutes,
		Tags:                 ticket.Tags,
		ExternalID:           ticket.ExternalID,
	}
}
