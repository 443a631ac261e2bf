package models

import "time"

// Archive records a workbook snapshot of selected tasks. Archival is
// soft: the tasks themselves are untouched, only the export is recorded.
type Archive struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Title     string `gorm:"size:128;not null"`
	FilePath  string `gorm:"size:255"`
	ItemCount int
	CreatedAt time.Time
}
