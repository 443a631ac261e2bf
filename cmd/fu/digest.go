package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/followup/internal/digest"
)

func newDigestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "KPI digest commands",
	}

	cmd.AddCommand(newDigestRunCmd())
	cmd.AddCommand(newDigestWatchCmd())
	return cmd
}

func newDigestRunCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Post the KPI digest once",
		Long:  "Builds the KPI digest as of now and posts it to the configured Slack/Discord channels.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigestOnce(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Followup config file")
	return cmd
}

func runDigestOnce(cmd *cobra.Command, configPath string) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	runner, err := digest.NewRunner(gormDB, cfg)
	if err != nil {
		return err
	}
	if err := runner.RunOnce(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Digest posted.")
	return nil
}

func newDigestWatchCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Post the KPI digest on the configured schedule",
		Long:  "Runs until interrupted, posting the digest at every fire time of the digest.cron expression.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigestWatch(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Followup config file")
	return cmd
}

func runDigestWatch(cmd *cobra.Command, configPath string) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	runner, err := digest.NewRunner(gormDB, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Watching schedule %q\n", cfg.Digest.Cron)
	return runner.Watch(cmd.Context())
}
