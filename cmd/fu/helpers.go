package main

import (
	"fmt"
	"time"

	"github.com/zulandar/followup/internal/approval"
	"github.com/zulandar/followup/internal/config"
	"github.com/zulandar/followup/internal/db"
	"github.com/zulandar/followup/internal/pipeline"
	"github.com/zulandar/followup/internal/sla"
	"github.com/zulandar/followup/internal/store"
	"gorm.io/gorm"
)

const defaultConfigPath = "followup.yaml"

// connectFromConfig loads the config and opens the store connection.
func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	gormDB, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return cfg, gormDB, nil
}

// resolveToday computes the single date used by one command run.
func resolveToday(cfg *config.Config, override string) (time.Time, error) {
	loc, err := cfg.Location()
	if err != nil {
		return time.Time{}, err
	}
	return pipeline.ResolveToday(override, loc)
}

// enrichAll loads every task plus the lookup tables and runs the
// pipeline over a working copy.
func enrichAll(gormDB *gorm.DB, cfg *config.Config, todayOverride string) ([]pipeline.Row, pipeline.KPI, error) {
	today, err := resolveToday(cfg, todayOverride)
	if err != nil {
		return nil, pipeline.KPI{}, err
	}

	s := store.New(gormDB)
	tasks, err := s.Tasks(store.ListFilters{})
	if err != nil {
		return nil, pipeline.KPI{}, err
	}
	crs, err := s.ChangeRequests()
	if err != nil {
		return nil, pipeline.KPI{}, err
	}
	policies, err := s.Policies()
	if err != nil {
		return nil, pipeline.KPI{}, err
	}

	rows := pipeline.Enrich(tasks, approval.BuildLookup(crs), sla.BuildPolicies(policies), pipeline.Context{
		Today:       today,
		DueSoonDays: cfg.DueSoonDays,
	})
	return rows, pipeline.Summarize(rows), nil
}
