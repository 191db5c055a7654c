package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen            TicketStatus = "open"
	TicketStatusInProgress      TicketStatus = "in_progress"
	TicketStatusPendingCustomer TicketStatus = "pending_customer"
	TicketStatusResolved        TicketStatus = "resolved"
	TicketStatusClosed          TicketStatus = "closed"
	TicketStatusCancelled       TicketStatus = "cancelled"
)

// ActiveStatuses are the states the breach scanner inspects.
var ActiveStatuses = []TicketStatus{
	TicketStatusOpen,
	TicketStatusInProgress,
	TicketStatusPendingCustomer,
}

// TerminalStatuses are excluded from overdue checks.
var TerminalStatuses = map[TicketStatus]bool{
	TicketStatusResolved:  true,
	TicketStatusClosed:    true,
	TicketStatusCancelled: true,
}

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// CustomerTier enumerates service tiers.
type CustomerTier string

const (
	TierBasic      CustomerTier = "basic"
	TierPremium    CustomerTier = "premium"
	TierEnterprise CustomerTier = "enterprise"
)

// Ticket is the aggregate for support requests. Identity is the composite
// (CustomerID, TicketID); CustomerID is the store partition key.
type Ticket struct {
	CustomerID            string
	TicketID              string
	Title                 string
	Description           string
	Category              string
	CustomerName          string
	Priority              TicketPriority
	Status                TicketStatus
	CustomerTier          CustomerTier
	CreatedAt             time.Time
	UpdatedAt             time.Time
	SLADeadline           time.Time
	ResolvedAt            *time.Time
	AssignedTechnicianID  *string
	EscalationLevel       int
	TimeSpentMinutes      int
	ResolutionTimeMinutes *int
	AttachmentCount       int
	Tags                  []string
	ExternalID            string
}

// Key returns the composite identifier used for deterministic tie-breaks.
func (t Ticket) Key() string {
	return t.CustomerID + "#" + t.TicketID
}

// IsOverdue reports whether the ticket has passed its SLA deadline while
// still in a non-terminal status.
func (t Ticket) IsOverdue(now time.Time) bool {
	return !now.Before(t.SLADeadline) && !TerminalStatuses[t.Status]
}
