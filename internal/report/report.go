// Package report serializes an enriched task set into a multi-sheet
// xlsx workbook: the cleaned task table, the KPI summary and the six
// pivot tables.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"
	"github.com/zulandar/followup/internal/dates"
	"github.com/zulandar/followup/internal/pipeline"
	"github.com/zulandar/followup/internal/pivot"
	"github.com/zulandar/followup/internal/status"
)

// Sheet names, in workbook order.
const (
	SheetTasks    = "1_Tasks_Clean"
	SheetSummary  = "2_Weekly_Summary"
	SheetStatus   = "3_Status_Pivot"
	SheetUnit     = "4_Unit_Pivot"
	SheetWeek     = "5_Week_Pivot"
	SheetPriority = "6_Priority_Pivot"
	SheetSLA      = "7_SLA_Pivot"
	SheetOwner    = "8_Owner_Pivot"
)

// taskHeader is the column order of the cleaned task sheet.
var taskHeader = []string{
	"ID", "Unit", "Role", "Task", "Week", "Status_Orig", "Status",
	"StartDate", "DueDate", "DueDate_Orig", "RescheduledTo", "Owner",
	"Priority", "Category", "Subcategory", "SLA_TargetDays", "CreatedOn",
	"CompletedOn", "Approval_Status", "Approval_By", "Change_Request_ID",
	"SLA_DueDate", "SLA_Breach", "Status_Final", "Is_Overdue",
	"Is_DueSoon", "Is_Done", "Planned_Days", "Actual_Days", "Notes", "Tags",
}

// Write assembles the workbook and writes it to w. Rows are sorted by
// unit, priority, week, final status and due date for the task sheet;
// the caller's slice is left untouched.
func Write(w io.Writer, rows []pipeline.Row, kpi pipeline.KPI) error {
	f := excelize.NewFile()
	defer f.Close()

	sorted := append([]pipeline.Row(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return taskLess(sorted[i], sorted[j]) })

	if err := writeTaskSheet(f, sorted); err != nil {
		return err
	}
	if err := writeSummarySheet(f, kpi); err != nil {
		return err
	}
	if err := writeCountSheet(f, SheetStatus, "Status_Final", pivot.ByStatus(rows)); err != nil {
		return err
	}
	if err := writeCrossTabSheet(f, SheetUnit, pivot.ByUnit(rows)); err != nil {
		return err
	}
	if err := writeCrossTabSheet(f, SheetWeek, pivot.ByWeek(rows)); err != nil {
		return err
	}
	if err := writeCrossTabSheet(f, SheetPriority, pivot.ByPriority(rows)); err != nil {
		return err
	}
	if err := writeCountSheet(f, SheetSLA, "SLA_State", pivot.BySLA(rows)); err != nil {
		return err
	}
	if err := writeCrossTabSheet(f, SheetOwner, pivot.ByOwner(rows)); err != nil {
		return err
	}

	// The default sheet is replaced by the task sheet.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("report: drop default sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("report: write workbook: %w", err)
	}
	return nil
}

// SaveFile assembles the workbook and saves it at path, creating parent
// directories as needed.
func SaveFile(path string, rows []pipeline.Row, kpi pipeline.KPI) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("report: create output dir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, rows, kpi)
}

func writeTaskSheet(f *excelize.File, rows []pipeline.Row) error {
	if _, err := f.NewSheet(SheetTasks); err != nil {
		return fmt.Errorf("report: new sheet %s: %w", SheetTasks, err)
	}
	if err := setRow(f, SheetTasks, 1, toAnySlice(taskHeader)); err != nil {
		return err
	}
	for i, r := range rows {
		cells := []interface{}{
			r.Task.ID, r.Task.Unit, r.Task.Role, r.Task.Title,
			intCell(r.Task.Week), r.StatusOrig, r.StatusCanon,
			dates.Format(r.Task.StartDate), dates.Format(r.Task.DueDate),
			dates.Format(r.DueDateOrig), dates.Format(r.Task.RescheduledTo),
			r.Task.Owner, r.Task.Priority, r.Task.Category,
			r.Task.Subcategory, intCell(r.Task.SLATargetDays),
			dates.Format(r.Task.CreatedOn), dates.Format(r.Task.CompletedOn),
			r.Task.ApprovalStatus, r.Task.ApprovalBy, r.Task.ChangeRequestID,
			dates.Format(r.SLADueDate), r.SLABreach, r.StatusFinal,
			r.IsOverdue, r.IsDueSoon, r.IsDone,
			intCell(r.PlannedDays), intCell(r.ActualDays),
			r.Task.Notes, r.Task.Tags,
		}
		if err := setRow(f, SheetTasks, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, kpi pipeline.KPI) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("report: new sheet %s: %w", SheetSummary, err)
	}
	lines := [][]interface{}{
		{"Metric", "Value"},
		{"Total Tasks", kpi.Total},
		{"Done %", kpi.DonePct},
		{"Overdue", kpi.Overdue},
		{"Due Soon", kpi.DueSoon},
		{"SLA Breach", kpi.SLABreach},
	}
	for i, cells := range lines {
		if err := setRow(f, SheetSummary, i+1, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeCountSheet(f *excelize.File, sheet, keyName string, counts []pivot.CountRow) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("report: new sheet %s: %w", sheet, err)
	}
	if err := setRow(f, sheet, 1, []interface{}{keyName, "Count"}); err != nil {
		return err
	}
	for i, c := range counts {
		if err := setRow(f, sheet, i+2, []interface{}{c.Key, c.Count}); err != nil {
			return err
		}
	}
	return nil
}

func writeCrossTabSheet(f *excelize.File, sheet string, tab pivot.CrossTab) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("report: new sheet %s: %w", sheet, err)
	}
	header := append([]interface{}{tab.Dimension}, toAnySlice(tab.Statuses)...)
	header = append(header, "Total")
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, row := range tab.Rows {
		cells := make([]interface{}, 0, len(row.Counts)+2)
		cells = append(cells, row.Key)
		for _, c := range row.Counts {
			cells = append(cells, c)
		}
		cells = append(cells, row.Total)
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("report: cell name for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("report: set row %d on %s: %w", row, sheet, err)
	}
	return nil
}

// taskLess orders the task sheet: unit, priority, week, final status
// (vocabulary order), due date.
func taskLess(a, b pipeline.Row) bool {
	if a.Task.Unit != b.Task.Unit {
		return a.Task.Unit < b.Task.Unit
	}
	if a.Task.Priority != b.Task.Priority {
		return a.Task.Priority < b.Task.Priority
	}
	wa, wb := weekOrder(a.Task.Week), weekOrder(b.Task.Week)
	if wa != wb {
		return wa < wb
	}
	ra, rb := status.Rank(a.StatusFinal), status.Rank(b.StatusFinal)
	if ra != rb {
		return ra < rb
	}
	da, db := dates.Format(a.Task.DueDate), dates.Format(b.Task.DueDate)
	return da < db
}

// weekOrder sorts nil weeks after every real week.
func weekOrder(w *int) int {
	if w == nil {
		return 1 << 30
	}
	return *w
}

func intCell(n *int) interface{} {
	if n == nil {
		return ""
	}
	return *n
}

func toAnySlice(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
