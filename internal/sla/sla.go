// Package sla fills missing per-task SLA targets from the policy table
// and computes the SLA due date and breach verdict.
package sla

import (
	"strings"
	"time"

	"github.com/zulandar/followup/internal/dates"
	"github.com/zulandar/followup/internal/models"
	"github.com/zulandar/followup/internal/status"
)

// Key identifies a policy row. Both parts are stored trimmed.
type Key struct {
	Category string
	Priority string
}

// Policies is an immutable (category, priority) → target-days lookup.
type Policies map[Key]int

// BuildPolicies indexes a policy table. Later duplicates of a key win,
// matching last-write semantics of the backing store.
func BuildPolicies(rows []models.SLAPolicy) Policies {
	p := make(Policies, len(rows))
	for _, r := range rows {
		key := Key{
			Category: strings.TrimSpace(r.Category),
			Priority: strings.TrimSpace(r.Priority),
		}
		p[key] = r.TargetDays
	}
	return p
}

// FillTargetDays returns the task with its SLA target filled from the
// policy table when the task's own target is missing or zero. No
// matching policy leaves the task unchanged.
func (p Policies) FillTargetDays(t models.Task) models.Task {
	if t.SLATargetDays != nil && *t.SLATargetDays != 0 {
		return t
	}
	key := Key{
		Category: strings.TrimSpace(t.Category),
		Priority: strings.TrimSpace(t.Priority),
	}
	if days, ok := p[key]; ok {
		t.SLATargetDays = &days
	}
	return t
}

// DueDate computes the SLA due date: created-on plus target-days. Nil
// when either part is missing — not applicable, not an error.
func DueDate(t models.Task) *time.Time {
	if t.CreatedOn == nil || t.SLATargetDays == nil {
		return nil
	}
	d := dates.AddDays(*t.CreatedOn, *t.SLATargetDays)
	return &d
}

// Breach reports whether the task violates its SLA due date as of
// today. Without an SLA due date there is never a breach. A completed
// task breaches only when it finished strictly after the SLA due date;
// an open task breaches once today is strictly past the due date,
// unless its canonical status is Done.
func Breach(t models.Task, slaDue *time.Time, canonical string, today time.Time) bool {
	if slaDue == nil {
		return false
	}
	if t.CompletedOn != nil {
		return t.CompletedOn.After(*slaDue)
	}
	return dates.Day(today).After(*slaDue) && canonical != status.Done
}
