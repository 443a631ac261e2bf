package models

import "time"

// ChangeRequest is an externally raised change record. The approval
// resolver consults these read-only: only rows whose status
// canonicalizes to "approved" have any effect on tasks.
type ChangeRequest struct {
	ID            string     `gorm:"primaryKey;size:32"`
	Date          *time.Time
	RequestedBy   string     `gorm:"size:64"`
	Description   string     `gorm:"type:text"`
	Impact        string     `gorm:"type:text"`
	ApprovedBy    string     `gorm:"size:64"`
	Status        string     `gorm:"size:32"`
	RescheduleTo  *time.Time
	LinkedTask    *uint      `gorm:"index"`
	CreatedAt     time.Time
}
