package store

import (
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// Store attribute names shared by the expression builder and the postgres
// translation layer.
const (
	AttrCustomerID     = "customer_id"
	AttrTicketID       = "ticket_id"
	AttrTechnicianID   = "assigned_technician_id"
	AttrStatus         = "status"
	AttrPriority       = "priority"
	AttrCategory       = "category"
	AttrCustomerTier   = "customer_tier"
	AttrEscalation     = "escalation_level"
	AttrCreatedAt      = "created_at"
	AttrUpdatedAt      = "updated_at"
	AttrSLADeadline    = "sla_deadline"
	AttrResolvedAt     = "resolved_at"
	AttrTimeSpent      = "time_spent_minutes"
	AttrResolutionTime = "resolution_time_minutes"
	AttrAttachments    = "attachment_count"
	AttrTags           = "tags"
	AttrTitle          = "title"
	AttrDescription    = "description"
	AttrCustomerName   = "customer_name"
	AttrExternalID     = "external_id"
)

// TicketFromRecord normalizes a raw store record into a Ticket. It is a
// pure function and tolerates missing or oddly typed attributes, leaving
// zero values in place.
func TicketFromRecord(rec Record) domain.Ticket {
	ticket := domain.Ticket{
		CustomerID:       asString(rec[AttrCustomerID]),
		TicketID:         asString(rec[AttrTicketID]),
		Title:            asString(rec[AttrTitle]),
		Description:      asString(rec[AttrDescription]),
		Category:         asString(rec[AttrCategory]),
		CustomerName:     asString(rec[AttrCustomerName]),
		Priority:         domain.TicketPriority(asString(rec[AttrPriority])),
		Status:           domain.TicketStatus(asString(rec[AttrStatus])),
		CustomerTier:     domain.CustomerTier(asString(rec[AttrCustomerTier])),
		CreatedAt:        asTime(rec[AttrCreatedAt]),
		UpdatedAt:        asTime(rec[AttrUpdatedAt]),
		SLADeadline:      asTime(rec[AttrSLADeadline]),
		EscalationLevel:  asInt(rec[AttrEscalation]),
		TimeSpentMinutes: asInt(rec[AttrTimeSpent]),
		AttachmentCount:  asInt(rec[AttrAttachments]),
		Tags:             asStringSlice(rec[AttrTags]),
		ExternalID:       asString(rec[AttrExternalID]),
	}
	if resolved := asTime(rec[AttrResolvedAt]); !resolved.IsZero() {
		ticket.ResolvedAt = &resolved
	}
	if tech := asString(rec[AttrTechnicianID]); tech != "" {
		ticket.AssignedTechnicianID = &tech
	}
	if _, ok := rec[AttrResolutionTime]; ok {
		if minutes := asInt(rec[AttrResolutionTime]); minutes > 0 {
			ticket.ResolutionTimeMinutes = &minutes
		}
	}
	return ticket
}

func asString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case *string:
		if val != nil {
			return *val
		}
	}
	return ""
}

func asTime(v any) time.Time {
	switch val := v.(type) {
	case time.Time:
		return val
	case *time.Time:
		if val != nil {
			return *val
		}
	case string:
		if parsed, err := time.Parse(time.RFC3339, val); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func asInt(v any) int {
	switch val := v.(type) {
	case int:
		return val
	case int32:
		return int(val)
	case int64:
		return int(val)
	case float64:
		return int(val)
	case *int:
		if val != nil {
			return *val
		}
	case *int32:
		if val != nil {
			return int(*val)
		}
	}
	return 0
}

func asStringSlice(v any) []string {
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := asString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
