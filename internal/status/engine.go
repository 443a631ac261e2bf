package status

import (
	"time"

	"github.com/zulandar/followup/internal/dates"
)

// Inputs holds everything the final-status computation reads. Today must
// be resolved once per run and shared by every task in that run.
type Inputs struct {
	Canonical     string
	StartDate     *time.Time
	DueDate       *time.Time
	RescheduledTo *time.Time
	Today         time.Time
	DueSoonDays   int
}

// Final computes the derived lifecycle status. Rules are evaluated in
// priority order and the first match wins:
//
//  1. A task marked Done is Done, whatever its dates say.
//  2. A forward-looking reschedule target wins over date math.
//  3. Due date in the past → Overdue; within the due-soon window → Due Soon.
//  4. Any other manually-entered status (except a stale Rescheduled)
//     stands as-is, including unrecognized passthrough labels.
//  5. A started task with no status is Under Progress.
//  6. Everything else is Not Done.
//
// Date urgency deliberately outranks a stale manual status, while Done
// outranks everything so a finished task never shows as overdue.
func Final(in Inputs) string {
	if in.Canonical == Done {
		return Done
	}
	if in.RescheduledTo != nil && !in.RescheduledTo.Before(dates.Day(in.Today)) {
		return Rescheduled
	}
	if in.DueDate != nil {
		left := dates.Between(in.Today, *in.DueDate)
		if left < 0 {
			return Overdue
		}
		if left <= in.DueSoonDays {
			return DueSoon
		}
	}
	if in.Canonical != "" && in.Canonical != Rescheduled {
		return in.Canonical
	}
	if in.StartDate != nil && !in.StartDate.After(dates.Day(in.Today)) {
		return UnderProgress
	}
	return NotDone
}
