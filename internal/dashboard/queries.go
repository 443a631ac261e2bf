package dashboard

import (
	"fmt"

	"github.com/zulandar/followup/internal/approval"
	"github.com/zulandar/followup/internal/pipeline"
	"github.com/zulandar/followup/internal/sla"
	"github.com/zulandar/followup/internal/store"
	"gorm.io/gorm"
)

// loadRows fetches the full task, change-request and policy tables and
// runs the enrichment pipeline over a working copy.
func loadRows(db *gorm.DB, opts StartOpts) ([]pipeline.Row, pipeline.Context, error) {
	s := store.New(db)

	tasks, err := s.Tasks(store.ListFilters{})
	if err != nil {
		return nil, pipeline.Context{}, fmt.Errorf("dashboard: %w", err)
	}
	crs, err := s.ChangeRequests()
	if err != nil {
		return nil, pipeline.Context{}, fmt.Errorf("dashboard: %w", err)
	}
	policies, err := s.Policies()
	if err != nil {
		return nil, pipeline.Context{}, fmt.Errorf("dashboard: %w", err)
	}

	today, err := pipeline.ResolveToday("", opts.Location)
	if err != nil {
		return nil, pipeline.Context{}, fmt.Errorf("dashboard: %w", err)
	}
	ctx := pipeline.Context{
		Today:       today,
		DueSoonDays: opts.DueSoonDays,
	}
	rows := pipeline.Enrich(tasks, approval.BuildLookup(crs), sla.BuildPolicies(policies), ctx)
	return rows, ctx, nil
}
