// Package schema maps arbitrarily-headed input tables onto the canonical
// task field set. Ingest sources (CSV exports, hand-rolled trackers)
// rarely agree on column names, so every canonical field carries a list
// of accepted synonyms.
package schema

import "strings"

// Canonical field names, in canonical column order.
const (
	FieldUnit            = "Unit"
	FieldRole            = "Role"
	FieldTask            = "Task"
	FieldWeek            = "Week"
	FieldStatus          = "Status"
	FieldStartDate       = "StartDate"
	FieldDueDate         = "DueDate"
	FieldRescheduledTo   = "RescheduledTo"
	FieldOwner           = "Owner"
	FieldNotes           = "Notes"
	FieldPriority        = "Priority"
	FieldCategory        = "Category"
	FieldSubcategory     = "Subcategory"
	FieldComplexity      = "Complexity"
	FieldEffortHours     = "EffortHours"
	FieldDependency      = "Dependency"
	FieldBlocker         = "Blocker"
	FieldRiskLevel       = "RiskLevel"
	FieldSLATargetDays   = "SLA_TargetDays"
	FieldCreatedOn       = "CreatedOn"
	FieldCompletedOn     = "CompletedOn"
	FieldQAStatus        = "QA_Status"
	FieldQAReviewer      = "QA_Reviewer"
	FieldApprovalStatus  = "Approval_Status"
	FieldApprovalBy      = "Approval_By"
	FieldKPIImpact       = "KPI_Impact"
	FieldKPIName         = "KPI_Name"
	FieldBudgetSAR       = "Budget_SAR"
	FieldActualCostSAR   = "ActualCost_SAR"
	FieldBenefitScore    = "Benefit_Score"
	FieldBenefitNotes    = "Benefit_Notes"
	FieldUATDate         = "UAT_Date"
	FieldReleaseID       = "Release_ID"
	FieldChangeRequestID = "Change_Request_ID"
	FieldTags            = "Tags"
)

// aliases maps each canonical field to its accepted synonyms. Matching
// is case-insensitive and trimmed; the canonical name itself is always
// accepted.
var aliases = map[string][]string{
	FieldUnit:            {"unit", "department", "dept", "section"},
	FieldRole:            {"role", "position"},
	FieldTask:            {"task", "mission", "title", "work", "item"},
	FieldWeek:            {"week", "wk"},
	FieldStatus:          {"status", "state"},
	FieldStartDate:       {"start", "startdate", "begin", "begindate"},
	FieldDueDate:         {"due", "duedate", "deadline", "targetdate"},
	FieldRescheduledTo:   {"rescheduledto", "reschedule_to", "newdeadline", "new_due", "rescheduled_to"},
	FieldOwner:           {"owner", "assigned", "assignee", "responsible"},
	FieldNotes:           {"notes", "remark", "remarks", "comments", "comment"},
	FieldPriority:        {"priority", "prio"},
	FieldCategory:        {"category", "cat"},
	FieldSubcategory:     {"subcategory", "subcat"},
	FieldComplexity:      {"complexity"},
	FieldEffortHours:     {"efforthours", "effort_hrs", "effort"},
	FieldDependency:      {"dependency", "depends_on"},
	FieldBlocker:         {"blocker"},
	FieldRiskLevel:       {"risk", "risklevel"},
	FieldSLATargetDays:   {"sla_targetdays", "sla_days", "sla_target"},
	FieldCreatedOn:       {"createdon", "created", "created_date", "created_at"},
	FieldCompletedOn:     {"completedon", "completed", "completed_date", "completed_at"},
	FieldQAStatus:        {"qa_status", "qaresult"},
	FieldQAReviewer:      {"qa_reviewer", "qareviewer"},
	FieldApprovalStatus:  {"approval_status", "approval"},
	FieldApprovalBy:      {"approval_by", "approved_by"},
	FieldKPIImpact:       {"kpi_impact"},
	FieldKPIName:         {"kpi_name"},
	FieldBudgetSAR:       {"budget_sar", "budget"},
	FieldActualCostSAR:   {"actualcost_sar", "actual_cost", "actuals"},
	FieldBenefitScore:    {"benefit_score"},
	FieldBenefitNotes:    {"benefit_notes"},
	FieldUATDate:         {"uat_date"},
	FieldReleaseID:       {"release_id"},
	FieldChangeRequestID: {"change_request_id", "cr_id", "change_id"},
	FieldTags:            {"tags"},
}

// FieldOrder lists every canonical field in display order.
var FieldOrder = []string{
	FieldUnit, FieldRole, FieldTask, FieldWeek, FieldStatus,
	FieldStartDate, FieldDueDate, FieldRescheduledTo, FieldOwner,
	FieldNotes, FieldPriority, FieldCategory, FieldSubcategory,
	FieldComplexity, FieldEffortHours, FieldDependency, FieldBlocker,
	FieldRiskLevel, FieldSLATargetDays, FieldCreatedOn, FieldCompletedOn,
	FieldQAStatus, FieldQAReviewer, FieldApprovalStatus, FieldApprovalBy,
	FieldKPIImpact, FieldKPIName, FieldBudgetSAR, FieldActualCostSAR,
	FieldBenefitScore, FieldBenefitNotes, FieldUATDate, FieldReleaseID,
	FieldChangeRequestID, FieldTags,
}

// Required lists the fields whose absence after normalization is a
// validation deficiency. Missing required fields do not stop the
// pipeline; the caller must surface the deficiency to the user.
var Required = []string{FieldTask, FieldDueDate}

// Record is one normalized input row, keyed by canonical field name.
// Every canonical field is present; unmatched fields hold "".
type Record map[string]string

// Normalize maps raw column headers onto canonical fields and rebuilds
// each row as a Record. The first header matching a field's alias list
// wins; headers that match nothing are dropped. The returned missing
// slice lists required fields with no source column.
func Normalize(header []string, rows [][]string) ([]Record, []string) {
	// Index raw headers by lowercase trimmed name.
	lower := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, ok := lower[key]; !ok {
			lower[key] = i
		}
	}

	// Resolve each canonical field to a source column, if any.
	source := make(map[string]int, len(FieldOrder))
	var missing []string
	for _, field := range FieldOrder {
		idx, ok := matchField(field, lower)
		if ok {
			source[field] = idx
			continue
		}
		if isRequired(field) {
			missing = append(missing, field)
		}
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(FieldOrder))
		for _, field := range FieldOrder {
			idx, ok := source[field]
			if ok && idx < len(row) {
				rec[field] = strings.TrimSpace(row[idx])
			} else {
				rec[field] = ""
			}
		}
		records = append(records, rec)
	}
	return records, missing
}

// matchField finds the source column index for a canonical field,
// checking aliases first and the canonical name itself as a fallback.
func matchField(field string, lower map[string]int) (int, bool) {
	for _, a := range aliases[field] {
		if idx, ok := lower[a]; ok {
			return idx, true
		}
	}
	idx, ok := lower[strings.ToLower(field)]
	return idx, ok
}

func isRequired(field string) bool {
	for _, r := range Required {
		if r == field {
			return true
		}
	}
	return false
}
