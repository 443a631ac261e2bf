package models

// Owner is a directory entry for a person tasks can be assigned to.
type Owner struct {
	ID    uint   `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"size:64;uniqueIndex"`
	Email string `gorm:"size:128"`
	Role  string `gorm:"size:64"`
	Unit  string `gorm:"size:64"`
}
