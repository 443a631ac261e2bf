package importer

import (
	"strconv"
	"strings"

	"github.com/zulandar/followup/internal/dates"
	"github.com/zulandar/followup/internal/models"
	"github.com/zulandar/followup/internal/schema"
)

// TaskFromRecord converts one normalized record into a task. Malformed
// dates and numbers degrade to nil rather than failing the row.
func TaskFromRecord(rec schema.Record) models.Task {
	return models.Task{
		Unit:          rec[schema.FieldUnit],
		Role:          rec[schema.FieldRole],
		Title:         rec[schema.FieldTask],
		Week:          parseWeek(rec[schema.FieldWeek]),
		Status:        rec[schema.FieldStatus],
		StartDate:     dates.Parse(rec[schema.FieldStartDate]),
		DueDate:       dates.Parse(rec[schema.FieldDueDate]),
		RescheduledTo: dates.Parse(rec[schema.FieldRescheduledTo]),
		Owner:         rec[schema.FieldOwner],
		Notes:         rec[schema.FieldNotes],

		Priority:    rec[schema.FieldPriority],
		Category:    rec[schema.FieldCategory],
		Subcategory: rec[schema.FieldSubcategory],
		Complexity:  rec[schema.FieldComplexity],
		EffortHours: parseFloat(rec[schema.FieldEffortHours]),
		Dependency:  rec[schema.FieldDependency],
		Blocker:     rec[schema.FieldBlocker],
		RiskLevel:   rec[schema.FieldRiskLevel],

		SLATargetDays: parseInt(rec[schema.FieldSLATargetDays]),
		CreatedOn:     dates.Parse(rec[schema.FieldCreatedOn]),
		CompletedOn:   dates.Parse(rec[schema.FieldCompletedOn]),

		QAStatus:       rec[schema.FieldQAStatus],
		QAReviewer:     rec[schema.FieldQAReviewer],
		ApprovalStatus: rec[schema.FieldApprovalStatus],
		ApprovalBy:     rec[schema.FieldApprovalBy],

		KPIImpact:     rec[schema.FieldKPIImpact],
		KPIName:       rec[schema.FieldKPIName],
		BudgetSAR:     parseFloat(rec[schema.FieldBudgetSAR]),
		ActualCostSAR: parseFloat(rec[schema.FieldActualCostSAR]),
		BenefitScore:  parseFloat(rec[schema.FieldBenefitScore]),
		BenefitNotes:  rec[schema.FieldBenefitNotes],

		UATDate:         dates.Parse(rec[schema.FieldUATDate]),
		ReleaseID:       rec[schema.FieldReleaseID],
		ChangeRequestID: rec[schema.FieldChangeRequestID],
		Tags:            rec[schema.FieldTags],
	}
}

// parseWeek parses a week number. Values outside 1–55 degrade to nil
// the same way malformed dates do.
func parseWeek(s string) *int {
	n := parseInt(s)
	if n == nil || *n < 1 || *n > 55 {
		return nil
	}
	return n
}

func parseInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Spreadsheets often render ints as "3.0".
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			return nil
		}
		n = int(f)
	}
	return &n
}

func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
