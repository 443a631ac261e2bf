package sla

import (
	"testing"
	"time"

	"github.com/zulandar/followup/internal/dates"
	"github.com/zulandar/followup/internal/models"
	"github.com/zulandar/followup/internal/status"
)

func day(s string) time.Time {
	d := dates.Parse(s)
	if d == nil {
		panic("bad test date: " + s)
	}
	return *d
}

func dayPtr(s string) *time.Time {
	d := day(s)
	return &d
}

func intPtr(n int) *int { return &n }

func testPolicies() Policies {
	return BuildPolicies([]models.SLAPolicy{
		{Category: "Reporting", Priority: "High", TargetDays: 5},
		{Category: "Reporting", Priority: "Low", TargetDays: 15},
		{Category: " Infra ", Priority: " Critical ", TargetDays: 2},
	})
}

func TestBuildPolicies_TrimsKeys(t *testing.T) {
	p := testPolicies()
	if got, ok := p[Key{"Infra", "Critical"}]; !ok || got != 2 {
		t.Errorf("policy (Infra, Critical) = %d, %t; want 2, true", got, ok)
	}
}

func TestFillTargetDays(t *testing.T) {
	p := testPolicies()
	tests := []struct {
		name string
		task models.Task
		want *int
	}{
		{"missing filled", models.Task{Category: "Reporting", Priority: "High"}, intPtr(5)},
		{"zero filled", models.Task{Category: "Reporting", Priority: "Low", SLATargetDays: intPtr(0)}, intPtr(15)},
		{"own value kept", models.Task{Category: "Reporting", Priority: "High", SLATargetDays: intPtr(9)}, intPtr(9)},
		{"no match left missing", models.Task{Category: "Misc", Priority: "High"}, nil},
		{"trimmed task fields", models.Task{Category: " Reporting ", Priority: " High "}, intPtr(5)},
	}
	for _, tt := range tests {
		got := p.FillTargetDays(tt.task)
		switch {
		case tt.want == nil && got.SLATargetDays != nil:
			t.Errorf("%s: target = %d, want nil", tt.name, *got.SLATargetDays)
		case tt.want != nil && (got.SLATargetDays == nil || *got.SLATargetDays != *tt.want):
			t.Errorf("%s: target = %v, want %d", tt.name, got.SLATargetDays, *tt.want)
		}
	}
}

func TestDueDate(t *testing.T) {
	got := DueDate(models.Task{CreatedOn: dayPtr("2024-01-01"), SLATargetDays: intPtr(5)})
	if dates.Format(got) != "2024-01-06" {
		t.Errorf("DueDate = %s, want 2024-01-06", dates.Format(got))
	}
}

func TestDueDate_NotApplicable(t *testing.T) {
	tests := []struct {
		name string
		task models.Task
	}{
		{"no created-on", models.Task{SLATargetDays: intPtr(5)}},
		{"no target days", models.Task{CreatedOn: dayPtr("2024-01-01")}},
		{"neither", models.Task{}},
	}
	for _, tt := range tests {
		if got := DueDate(tt.task); got != nil {
			t.Errorf("%s: DueDate = %v, want nil", tt.name, got)
		}
	}
}

func TestBreach(t *testing.T) {
	slaDue := dayPtr("2024-01-06")
	tests := []struct {
		name      string
		task      models.Task
		slaDue    *time.Time
		canonical string
		today     string
		want      bool
	}{
		{"completed late", models.Task{CompletedOn: dayPtr("2024-01-10")}, slaDue, status.Done, "2024-01-20", true},
		{"completed in time", models.Task{CompletedOn: dayPtr("2024-01-05")}, slaDue, status.Done, "2024-01-20", false},
		{"completed on the day", models.Task{CompletedOn: dayPtr("2024-01-06")}, slaDue, status.Done, "2024-01-20", false},
		{"open and past due", models.Task{}, slaDue, status.NotDone, "2024-01-07", true},
		{"open on the day", models.Task{}, slaDue, status.NotDone, "2024-01-06", false},
		{"open but marked done", models.Task{}, slaDue, status.Done, "2024-01-07", false},
		{"no sla due date", models.Task{CompletedOn: dayPtr("2024-01-10")}, nil, status.NotDone, "2024-01-20", false},
	}
	for _, tt := range tests {
		got := Breach(tt.task, tt.slaDue, tt.canonical, day(tt.today))
		if got != tt.want {
			t.Errorf("%s: Breach = %t, want %t", tt.name, got, tt.want)
		}
	}
}
