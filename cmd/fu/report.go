package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/zulandar/followup/internal/report"
	"github.com/zulandar/followup/internal/store"
)

func newReportCmd() *cobra.Command {
	var (
		configPath string
		today      string
		output     string
		save       bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the multi-sheet follow-up workbook",
		Long:  "Enriches every stored task as of today and writes the xlsx workbook: cleaned tasks, KPI summary and six pivot tables. With --save, resolved approval and SLA fields are written back to the store.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, configPath, today, output, save)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Followup config file")
	cmd.Flags().StringVar(&today, "today", "", "override today (YYYY-MM-DD, for reproducible reports)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default FollowUp_<date>.xlsx in report.output_dir)")
	cmd.Flags().BoolVar(&save, "save", false, "write resolved approval/SLA fields back to the store")
	return cmd
}

func runReport(cmd *cobra.Command, configPath, today, output string, save bool) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	rows, kpi, err := enrichAll(gormDB, cfg, today)
	if err != nil {
		return err
	}

	if output == "" {
		stamp := time.Now().Format("20060102_150405")
		output = filepath.Join(cfg.Report.OutputDir, fmt.Sprintf("FollowUp_%s.xlsx", stamp))
	}
	if err := report.SaveFile(output, rows, kpi); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Report written to %s\n", output)
	fmt.Fprintf(out, "Total: %d  Done: %.1f%%  Overdue: %d  Due soon: %d  SLA breach: %d\n",
		kpi.Total, kpi.DonePct, kpi.Overdue, kpi.DueSoon, kpi.SLABreach)

	if save {
		if err := store.New(gormDB).SaveEnriched(rows); err != nil {
			return err
		}
		fmt.Fprintln(out, "Resolved fields saved back to the store.")
	}
	return nil
}
