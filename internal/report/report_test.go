package report

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"github.com/zulandar/followup/internal/dates"
	"github.com/zulandar/followup/internal/models"
	"github.com/zulandar/followup/internal/pipeline"
	"github.com/zulandar/followup/internal/status"
)

func dayPtr(s string) *time.Time {
	d := dates.Parse(s)
	if d == nil {
		panic("bad test date: " + s)
	}
	return d
}

func sampleRows() []pipeline.Row {
	return []pipeline.Row{
		{
			Task: models.Task{
				ID: 1, Unit: "Ops", Title: "Quarterly report",
				Owner: "Sara", Priority: "High", DueDate: dayPtr("2024-01-05"),
			},
			StatusOrig:  "pending",
			StatusCanon: status.NotDone,
			StatusFinal: status.Overdue,
			DueDateOrig: dayPtr("2024-01-05"),
			IsOverdue:   true,
		},
		{
			Task: models.Task{
				ID: 2, Unit: "Finance", Title: "Vendor review",
				Owner: "Omar", Priority: "Low", DueDate: dayPtr("2024-01-12"),
			},
			StatusOrig:  "completed",
			StatusCanon: status.Done,
			StatusFinal: status.Done,
			IsDone:      true,
			SLABreach:   true,
		},
	}
}

func writeSample(t *testing.T) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	kpi := pipeline.Summarize(sampleRows())
	if err := Write(&buf, sampleRows(), kpi); err != nil {
		t.Fatalf("Write: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWrite_SheetList(t *testing.T) {
	f := writeSample(t)
	want := []string{
		SheetTasks, SheetSummary, SheetStatus, SheetUnit,
		SheetWeek, SheetPriority, SheetSLA, SheetOwner,
	}
	if got := f.GetSheetList(); !reflect.DeepEqual(got, want) {
		t.Errorf("sheets = %v, want %v", got, want)
	}
}

func TestWrite_TaskSheet(t *testing.T) {
	f := writeSample(t)
	rows, err := f.GetRows(SheetTasks)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header plus 2 tasks", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][3] != "Task" {
		t.Errorf("header = %v", rows[0][:4])
	}
	// Units sort ascending: Finance before Ops.
	if rows[1][1] != "Finance" || rows[2][1] != "Ops" {
		t.Errorf("unit order = %q, %q; want Finance then Ops", rows[1][1], rows[2][1])
	}
	if rows[2][3] != "Quarterly report" {
		t.Errorf("task cell = %q", rows[2][3])
	}
	if rows[2][8] != "2024-01-05" {
		t.Errorf("due date cell = %q, want 2024-01-05", rows[2][8])
	}
}

func TestWrite_SummarySheet(t *testing.T) {
	f := writeSample(t)
	rows, err := f.GetRows(SheetSummary)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	got := make(map[string]string, len(rows))
	for _, r := range rows[1:] {
		if len(r) >= 2 {
			got[r[0]] = r[1]
		}
	}
	if got["Total Tasks"] != "2" {
		t.Errorf("total = %q, want 2", got["Total Tasks"])
	}
	if got["Done %"] != "50" {
		t.Errorf("done pct = %q, want 50", got["Done %"])
	}
	if got["Overdue"] != "1" || got["SLA Breach"] != "1" {
		t.Errorf("summary = %v", got)
	}
}

func TestWrite_StatusAndSLAPivots(t *testing.T) {
	f := writeSample(t)

	rows, err := f.GetRows(SheetStatus)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || rows[1][0] != status.Overdue || rows[2][0] != status.Done {
		t.Errorf("status pivot = %v", rows)
	}

	rows, err = f.GetRows(SheetSLA)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || rows[1][0] != "Breach" || rows[1][1] != "1" || rows[2][0] != "OK" || rows[2][1] != "1" {
		t.Errorf("sla pivot = %v", rows)
	}
}

func TestWrite_UnitPivotShape(t *testing.T) {
	f := writeSample(t)
	rows, err := f.GetRows(SheetUnit)
	if err != nil {
		t.Fatal(err)
	}
	header := rows[0]
	if header[0] != "Unit" || header[len(header)-1] != "Total" {
		t.Errorf("header = %v", header)
	}
	if len(header) != 2+len(status.Vocabulary) {
		t.Errorf("columns = %d, want dimension + vocabulary + total", len(header))
	}
	if rows[1][0] != "Finance" || rows[1][len(header)-1] != "1" {
		t.Errorf("first data row = %v", rows[1])
	}
}

func TestWrite_EmptyRows(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, pipeline.KPI{}); err != nil {
		t.Fatalf("Write empty: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()
	if got := len(f.GetSheetList()); got != 8 {
		t.Errorf("sheets = %d, want 8", got)
	}
}

func TestSaveFile_CreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "reports", "fu.xlsx")
	if err := SaveFile(path, sampleRows(), pipeline.KPI{Total: 2}); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("stat: %v", err)
	}
}
