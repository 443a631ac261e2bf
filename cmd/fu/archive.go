package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/zulandar/followup/internal/approval"
	"github.com/zulandar/followup/internal/models"
	"github.com/zulandar/followup/internal/pipeline"
	"github.com/zulandar/followup/internal/report"
	"github.com/zulandar/followup/internal/sla"
	"github.com/zulandar/followup/internal/store"
)

func newArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Archive management commands",
	}

	cmd.AddCommand(newArchiveCreateCmd())
	cmd.AddCommand(newArchiveListCmd())
	return cmd
}

func newArchiveCreateCmd() *cobra.Command {
	var (
		configPath string
		title      string
		idsCSV     string
		today      string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Archive selected tasks into a workbook",
		Long:  "Writes a workbook containing the selected tasks (enriched as of today) and records an archive row. The tasks themselves are untouched.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(idsCSV)
			if err != nil {
				return err
			}
			return runArchiveCreate(cmd, configPath, title, ids, today)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Followup config file")
	cmd.Flags().StringVar(&title, "title", "Batch", "archive title")
	cmd.Flags().StringVar(&idsCSV, "ids", "", "comma-separated task IDs (required)")
	cmd.Flags().StringVar(&today, "today", "", "override today (YYYY-MM-DD)")
	cmd.MarkFlagRequired("ids")
	return cmd
}

func parseIDs(csv string) ([]uint, error) {
	parts := strings.Split(csv, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid task id %q", p)
		}
		ids = append(ids, uint(n))
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no task ids given")
	}
	return ids, nil
}

func runArchiveCreate(cmd *cobra.Command, configPath, title string, ids []uint, today string) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	day, err := resolveToday(cfg, today)
	if err != nil {
		return err
	}

	s := store.New(gormDB)
	tasks, err := s.TasksByID(ids)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return fmt.Errorf("no tasks matched the given ids")
	}
	crs, err := s.ChangeRequests()
	if err != nil {
		return err
	}
	policies, err := s.Policies()
	if err != nil {
		return err
	}

	rows := pipeline.Enrich(tasks, approval.BuildLookup(crs), sla.BuildPolicies(policies), pipeline.Context{
		Today:       day,
		DueSoonDays: cfg.DueSoonDays,
	})

	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(cfg.Report.OutputDir, fmt.Sprintf("%s_%s.xlsx", title, stamp))
	if err := report.SaveFile(path, rows, pipeline.Summarize(rows)); err != nil {
		return err
	}

	archive := models.Archive{Title: title, FilePath: path, ItemCount: len(tasks)}
	if err := s.CreateArchive(&archive); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Archive %q created with %d tasks: %s\n", title, len(tasks), path)
	return nil
}

func newArchiveListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded archives",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchiveList(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Followup config file")
	return cmd
}

func runArchiveList(cmd *cobra.Command, configPath string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	archives, err := store.New(gormDB).Archives()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(archives) == 0 {
		fmt.Fprintln(out, "No archives yet.")
		return nil
	}
	for _, a := range archives {
		fmt.Fprintf(out, "#%d %s — %d tasks — %s (%s)\n",
			a.ID, a.Title, a.ItemCount, a.FilePath, a.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
