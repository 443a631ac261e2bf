package models

// SLAPolicy maps a (category, priority) pair to a target turnaround in
// days. Tasks without their own SLA target inherit from the matching
// policy row.
type SLAPolicy struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	Category   string `gorm:"size:64;uniqueIndex:idx_sla_policy_key"`
	Priority   string `gorm:"size:16;uniqueIndex:idx_sla_policy_key"`
	TargetDays int    `gorm:"not null"`
	Notes      string `gorm:"size:255"`
}
