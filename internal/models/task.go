package models

import "time"

// Task is the core tracked work item in Followup.
//
// Date and numeric fields are pointers so that an absent or unparseable
// value survives as NULL rather than a zero value; the enrichment
// pipeline treats nil as "no date".
type Task struct {
	ID            uint       `gorm:"primaryKey;autoIncrement"`
	Unit          string     `gorm:"size:64;index"`
	Role          string     `gorm:"size:64"`
	Title         string     `gorm:"column:task;not null"`
	Week          *int       `gorm:"index"`
	Status        string     `gorm:"size:64"`
	StartDate     *time.Time
	DueDate       *time.Time `gorm:"index"`
	RescheduledTo *time.Time
	Owner         string     `gorm:"size:64;index"`
	Notes         string     `gorm:"type:text"`

	Priority    string   `gorm:"size:16;index"`
	Category    string   `gorm:"size:64"`
	Subcategory string   `gorm:"size:64"`
	Complexity  string   `gorm:"size:32"`
	EffortHours *float64
	Dependency  string   `gorm:"size:128"`
	Blocker     string   `gorm:"size:128"`
	RiskLevel   string   `gorm:"size:32"`

	SLATargetDays *int       `gorm:"column:sla_target_days"`
	CreatedOn     *time.Time
	CompletedOn   *time.Time

	QAStatus       string `gorm:"column:qa_status;size:32"`
	QAReviewer     string `gorm:"column:qa_reviewer;size:64"`
	ApprovalStatus string `gorm:"size:32"`
	ApprovalBy     string `gorm:"size:64"`

	KPIImpact     string   `gorm:"column:kpi_impact;size:128"`
	KPIName       string   `gorm:"column:kpi_name;size:64"`
	BudgetSAR     *float64 `gorm:"column:budget_sar"`
	ActualCostSAR *float64 `gorm:"column:actual_cost_sar"`
	BenefitScore  *float64
	BenefitNotes  string   `gorm:"type:text"`

	UATDate         *time.Time `gorm:"column:uat_date"`
	ReleaseID       string     `gorm:"size:32"`
	ChangeRequestID string     `gorm:"size:32;index"`
	Tags            string     `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
