package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zulandar/followup/internal/config"
	"github.com/zulandar/followup/internal/db"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDBInitCmd())
	cmd.AddCommand(newDBResetCmd())
	return cmd
}

func newDBInitCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the Followup database",
		Long:  "Migrates all tables and seeds SLA policies from configuration.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBInit(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Followup config file")
	return cmd
}

func runDBInit(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	fmt.Fprintf(out, "Loaded config from %s (%s driver)\n", configPath, cfg.DB.Driver)

	gormDB, err := db.Connect(cfg.DB)
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))

	if len(cfg.SLAPolicies) > 0 {
		if err := db.SeedPolicies(gormDB, cfg.SLAPolicies); err != nil {
			return err
		}
		fmt.Fprintf(out, "Seeded %d SLA policies\n", len(cfg.SLAPolicies))
	}

	fmt.Fprintln(out, "Followup database initialized successfully.")
	return nil
}

func newDBResetCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop and recreate all Followup tables",
		Long:  "Destroys all stored tasks, change requests, SLA policies and archives, then re-runs migration and seeding.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBReset(cmd, configPath, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Followup config file")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func runDBReset(cmd *cobra.Command, configPath string, yes bool) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if !yes {
		fmt.Fprint(out, "This deletes all Followup data. Type 'reset' to continue: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		line, _ := reader.ReadString('\n')
		if strings.TrimSpace(line) != "reset" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	gormDB, err := db.Connect(cfg.DB)
	if err != nil {
		return err
	}

	for _, m := range db.AllModels() {
		if err := gormDB.Migrator().DropTable(m); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	if len(cfg.SLAPolicies) > 0 {
		if err := db.SeedPolicies(gormDB, cfg.SLAPolicies); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "Followup database reset.")
	return nil
}
