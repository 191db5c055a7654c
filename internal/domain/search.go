package domain

import "time"

// SortField enumerates supported sort keys.
type SortField string

const (
	SortByCreatedAt       SortField = "createdAt"
	SortByUpdatedAt       SortField = "updatedAt"
	SortByPriority        SortField = "priority"
	SortBySLADeadline     SortField = "slaDeadline"
	SortByStatus          SortField = "status"
	SortByCustomerName    SortField = "customerName"
	SortByEscalationLevel SortField = "escalationLevel"
	SortByTimeSpent       SortField = "timeSpent"
	SortByRelevance       SortField = "relevance"
)

// SortOrder enumerates sort directions.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// RiskBucket is the coarse risk classification used for search filtering.
// Its boundaries (0.3/0.7) are independent from the alerting RiskLevel scale.
type RiskBucket string

const (
	RiskBucketLow    RiskBucket = "low"
	RiskBucketMedium RiskBucket = "medium"
	RiskBucketHigh   RiskBucket = "high"
)

// SearchFilters is the structured filter set of a search request. Nil or
// empty fields mean "no constraint".
type SearchFilters struct {
	CustomerID           *string
	AssignedTechnicianID *string
	Statuses             []TicketStatus
	Priorities           []TicketPriority
	Categories           []string
	Tiers                []CustomerTier
	Tags                 []string
	EscalationLevels     []int
	CreatedAfter         *time.Time
	CreatedBefore        *time.Time
	UpdatedAfter         *time.Time
	UpdatedBefore        *time.Time
	TimeSpentMin         *int
	TimeSpentMax         *int
	ResolutionTimeMin    *int
	ResolutionTimeMax    *int
	HasAttachments       *bool
	SLARisk              *RiskBucket
	Overdue              *bool
}

// SearchQuery is a full search request.
type SearchQuery struct {
	Query           string
	Filters         SearchFilters
	SortBy          SortField
	SortOrder       SortOrder
	Page            int
	Limit           int
	IncludeResolved bool
	IncludeClosed   bool
}

// SearchResult is one page of matching tickets.
//
// TotalCount and HasMore describe the in-memory candidate set after
// post-filtering and ranking, which is bounded by the fetcher's over-fetch
// cap. They are approximations, not global counts, and may shift between
// calls if the underlying data mutates.
type SearchResult struct {
	Tickets    []Ticket
	TotalCount int
	HasMore    bool
	Cursor     string
}
