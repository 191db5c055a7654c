package sla

import (
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// Target holds the response and resolution objectives for one
// (tier, priority) combination.
type Target struct {
	ResponseTimeMinutes   int
	ResolutionTimeMinutes int
	BusinessHoursOnly     bool
}

type targetKey struct {
	tier     domain.CustomerTier
	priority domain.TicketPriority
}

// BusinessHours describes the calendar used for business-hours-only
// deadline math. Holidays are keyed by date in "2006-01-02" form, in the
// calendar's timezone.
type BusinessHours struct {
	Location    *time.Location
	WorkingDays map[time.Weekday]bool
	StartHour   int
	EndHour     int
	Holidays    map[string]bool
}

// DefaultBusinessHours is a Monday-Friday 9-17 UTC calendar with no
// holidays.
func DefaultBusinessHours() BusinessHours {
	return BusinessHours{
		Location: time.UTC,
		WorkingDays: map[time.Weekday]bool{
			time.Monday:    true,
			time.Tuesday:   true,
			time.Wednesday: true,
			time.Thursday:  true,
			time.Friday:    true,
		},
		StartHour: 9,
		EndHour:   17,
		Holidays:  map[string]bool{},
	}
}

// ConfigTable is the immutable (tier × priority) target mapping plus the
// business-hours calendar. It is populated once at startup and is safe for
// unsynchronized concurrent reads.
type ConfigTable struct {
	targets map[targetKey]Target
	hours   BusinessHours
	logger  *zap.Logger
}

// NewConfigTable builds the table from explicit targets. A missing
// basic/medium entry is filled in so the fallback lookup can never fail.
func NewConfigTable(targets map[domain.CustomerTier]map[domain.TicketPriority]Target, hours BusinessHours, logger *zap.Logger) *ConfigTable {
	table := &ConfigTable{
		targets: make(map[targetKey]Target),
		hours:   hours,
		logger:  logger,
	}
	for tier, byPriority := range targets {
		for priority, target := range byPriority {
			table.targets[targetKey{tier, priority}] = target
		}
	}
	fallback := targetKey{domain.TierBasic, domain.TicketPriorityMedium}
	if _, ok := table.targets[fallback]; !ok {
		table.targets[fallback] = Target{ResponseTimeMinutes: 240, ResolutionTimeMinutes: 2880}
	}
	return table
}

// Lookup returns the target for a (tier, priority) pair. A miss is
// non-fatal: it falls back to the basic/medium entry and logs a warning.
func (t *ConfigTable) Lookup(tier domain.CustomerTier, priority domain.TicketPriority) Target {
	if target, ok := t.targets[targetKey{tier, priority}]; ok {
		return target
	}
	if t.logger != nil {
		t.logger.Warn("no SLA config for tier/priority, using basic/medium default",
			zap.String("tier", string(tier)),
			zap.String("priority", string(priority)))
	}
	return t.targets[targetKey{domain.TierBasic, domain.TicketPriorityMedium}]
}

// Hours returns the business-hours calendar.
func (t *ConfigTable) Hours() BusinessHours {
	return t.hours
}

// DefaultTargets is the standard support matrix. Basic-tier low and medium
// tickets run on business time; everything else is wall clock.
func DefaultTargets() map[domain.CustomerTier]map[domain.TicketPriority]Target {
	return map[domain.CustomerTier]map[domain.TicketPriority]Target{
		domain.TierBasic: {
			domain.TicketPriorityLow:      {ResponseTimeMinutes: 480, ResolutionTimeMinutes: 4320, BusinessHoursOnly: true},
			domain.TicketPriorityMedium:   {ResponseTimeMinutes: 240, ResolutionTimeMinutes: 2880, BusinessHoursOnly: true},
			domain.TicketPriorityHigh:     {ResponseTimeMinutes: 120, ResolutionTimeMinutes: 1440},
			domain.TicketPriorityCritical: {ResponseTimeMinutes: 60, ResolutionTimeMinutes: 480},
		},
		domain.TierPremium: {
			domain.TicketPriorityLow:      {ResponseTimeMinutes: 240, ResolutionTimeMinutes: 2880, BusinessHoursOnly: true},
			domain.TicketPriorityMedium:   {ResponseTimeMinutes: 120, ResolutionTimeMinutes: 1440},
			domain.TicketPriorityHigh:     {ResponseTimeMinutes: 60, ResolutionTimeMinutes: 480},
			domain.TicketPriorityCritical: {ResponseTimeMinutes: 30, ResolutionTimeMinutes: 240},
		},
		domain.TierEnterprise: {
			domain.TicketPriorityLow:      {ResponseTimeMinutes: 120, ResolutionTimeMinutes: 1440},
			domain.TicketPriorityMedium:   {ResponseTimeMinutes: 60, ResolutionTimeMinutes: 480},
			domain.TicketPriorityHigh:     {ResponseTimeMinutes: 30, ResolutionTimeMinutes: 240},
			domain.TicketPriorityCritical: {ResponseTimeMinutes: 15, ResolutionTimeMinutes: 60},
		},
	}
}
