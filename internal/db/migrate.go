package db

import (
	"fmt"

	"github.com/zulandar/followup/internal/config"
	"github.com/zulandar/followup/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Task{},
		&models.ChangeRequest{},
		&models.SLAPolicy{},
		&models.Owner{},
		&models.Archive{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// SeedPolicies upserts SLA policy rows from configuration, keyed by
// (category, priority).
func SeedPolicies(db *gorm.DB, seeds []config.SLAPolicySeed) error {
	for _, ps := range seeds {
		policy := models.SLAPolicy{
			Category:   ps.Category,
			Priority:   ps.Priority,
			TargetDays: ps.TargetDays,
			Notes:      ps.Notes,
		}
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "category"}, {Name: "priority"}},
			DoUpdates: clause.AssignmentColumns([]string{"target_days", "notes"}),
		}).Create(&policy)
		if result.Error != nil {
			return fmt.Errorf("db: seed sla policy (%s, %s): %w", ps.Category, ps.Priority, result.Error)
		}
	}
	return nil
}
