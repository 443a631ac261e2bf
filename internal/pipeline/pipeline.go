// Package pipeline runs the enrichment stages over an in-memory task
// set: approval resolution, SLA resolution, final-status derivation and
// flags. It is pure — it mutates working copies, never the store — and
// every date comparison uses the single Today carried in the Context.
package pipeline

import (
	"fmt"
	"time"

	"github.com/zulandar/followup/internal/approval"
	"github.com/zulandar/followup/internal/dates"
	"github.com/zulandar/followup/internal/models"
	"github.com/zulandar/followup/internal/sla"
	"github.com/zulandar/followup/internal/status"
)

// Context carries the per-run parameters. Today is resolved exactly
// once per invocation so that a run straddling midnight stays
// internally consistent.
type Context struct {
	Today       time.Time
	DueSoonDays int
}

// ResolveToday returns the date for this run: the override when given
// (ISO format), otherwise the current date in loc.
func ResolveToday(override string, loc *time.Location) (time.Time, error) {
	if override != "" {
		t, err := time.Parse("2006-01-02", override)
		if err != nil {
			return time.Time{}, fmt.Errorf("pipeline: parse today override %q: %w", override, err)
		}
		return dates.Day(t), nil
	}
	return dates.Day(time.Now().In(loc)), nil
}

// Row is one enriched task: the resolved working copy plus every
// derived field downstream consumers read.
type Row struct {
	Task models.Task

	StatusOrig  string
	StatusCanon string
	StatusFinal string
	DueDateOrig *time.Time

	SLADueDate *time.Time
	SLABreach  bool

	IsOverdue bool
	IsDueSoon bool
	IsDone    bool

	PlannedDays *int
	ActualDays  *int
}

// Enrich runs every stage over the task set and returns one Row per
// task, in input order. The source slice is not modified.
func Enrich(tasks []models.Task, approvals approval.Lookup, policies sla.Policies, ctx Context) []Row {
	rows := make([]Row, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, enrichOne(t, approvals, policies, ctx))
	}
	return rows
}

func enrichOne(t models.Task, approvals approval.Lookup, policies sla.Policies, ctx Context) Row {
	row := Row{
		StatusOrig:  t.Status,
		DueDateOrig: t.DueDate,
	}

	t = approvals.Apply(t)
	t = policies.FillTargetDays(t)

	row.StatusCanon = status.Canon(t.Status)
	row.SLADueDate = sla.DueDate(t)
	row.SLABreach = sla.Breach(t, row.SLADueDate, row.StatusCanon, ctx.Today)

	row.StatusFinal = status.Final(status.Inputs{
		Canonical:     row.StatusCanon,
		StartDate:     t.StartDate,
		DueDate:       t.DueDate,
		RescheduledTo: t.RescheduledTo,
		Today:         ctx.Today,
		DueSoonDays:   ctx.DueSoonDays,
	})
	row.IsOverdue = row.StatusFinal == status.Overdue
	row.IsDueSoon = row.StatusFinal == status.DueSoon
	row.IsDone = row.StatusFinal == status.Done

	row.PlannedDays = spanDays(t.StartDate, t.DueDate)
	row.ActualDays = spanDays(t.CreatedOn, t.CompletedOn)

	row.Task = t
	return row
}

// spanDays returns the whole days between two dates, nil when either is
// missing.
func spanDays(from, to *time.Time) *int {
	if from == nil || to == nil {
		return nil
	}
	d := dates.Between(*from, *to)
	return &d
}

// KPI is the headline summary over an enriched task set.
type KPI struct {
	Total     int
	DonePct   float64
	Overdue   int
	DueSoon   int
	SLABreach int
}

// Summarize computes the KPI summary. DonePct is rounded to one
// decimal; an empty set reports 0.0.
func Summarize(rows []Row) KPI {
	var k KPI
	k.Total = len(rows)
	done := 0
	for _, r := range rows {
		if r.IsDone {
			done++
		}
		if r.IsOverdue {
			k.Overdue++
		}
		if r.IsDueSoon {
			k.DueSoon++
		}
		if r.SLABreach {
			k.SLABreach++
		}
	}
	if k.Total > 0 {
		k.DonePct = float64(int(float64(done)/float64(k.Total)*1000+0.5)) / 10
	}
	return k
}
