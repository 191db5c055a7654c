package sla

import (
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// DeadlineCalculator turns a creation instant plus tier and priority into
// an absolute SLA deadline using the config table. This table-driven,
// business-hours-aware formula is the canonical one; no flat multiplier
// variant exists alongside it.
type DeadlineCalculator struct {
	table *ConfigTable
}

// NewDeadlineCalculator builds a calculator over the given table.
func NewDeadlineCalculator(table *ConfigTable) *DeadlineCalculator {
	return &DeadlineCalculator{table: table}
}

// Deadline computes the resolution deadline for a ticket created at
// createdAt. Wall-clock targets add minutes directly; business-hours-only
// targets consume only minutes inside the working calendar.
func (c *DeadlineCalculator) Deadline(tier domain.CustomerTier, priority domain.TicketPriority, createdAt time.Time) time.Time {
	target := c.table.Lookup(tier, priority)
	if !target.BusinessHoursOnly {
		return createdAt.Add(time.Duration(target.ResolutionTimeMinutes) * time.Minute)
	}
	return c.table.Hours().AddBusinessMinutes(createdAt, target.ResolutionTimeMinutes)
}

// AddBusinessMinutes advances from start by the given number of business
// minutes. The iterator walks day by day, skipping non-working weekdays and
// holidays, clamping each day's start to StartHour and consuming only
// minutes inside [StartHour, EndHour).
func (b BusinessHours) AddBusinessMinutes(start time.Time, minutes int) time.Time {
	loc := b.Location
	if loc == nil {
		loc = time.UTC
	}
	cursor := start.In(loc)
	remaining := time.Duration(minutes) * time.Minute

	for remaining > 0 {
		if !b.isWorkingDay(cursor) {
			cursor = startOfNextDay(cursor)
			continue
		}
		dayStart := time.Date(cursor.Year(), cursor.Month(), cursor.Day(), b.StartHour, 0, 0, 0, loc)
		dayEnd := time.Date(cursor.Year(), cursor.Month(), cursor.Day(), b.EndHour, 0, 0, 0, loc)
		if cursor.Before(dayStart) {
			cursor = dayStart
		}
		if !cursor.Before(dayEnd) {
			cursor = startOfNextDay(cursor)
			continue
		}
		available := dayEnd.Sub(cursor)
		if remaining <= available {
			return cursor.Add(remaining)
		}
		remaining -= available
		cursor = startOfNextDay(cursor)
	}
	return cursor
}

func (b BusinessHours) isWorkingDay(t time.Time) bool {
	if !b.WorkingDays[t.Weekday()] {
		return false
	}
	return !b.Holidays[t.Format("2006-01-02")]
}

func startOfNextDay(t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, t.Location())
}
