package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zulandar/followup/internal/importer"
	"github.com/zulandar/followup/internal/store"
	"golang.org/x/term"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import tasks from external sources",
	}

	cmd.AddCommand(newImportCSVCmd())
	cmd.AddCommand(newImportGitHubCmd())
	return cmd
}

func newImportCSVCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "csv <file>",
		Short: "Import tasks from a CSV file",
		Long:  "Imports tasks from a CSV file. Column headers are matched case-insensitively against the canonical alias table; unknown columns are ignored.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportCSV(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Followup config file")
	return cmd
}

func runImportCSV(cmd *cobra.Command, configPath, path string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	result, err := importer.ReadCSVFile(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(result.MissingRequired) > 0 {
		fmt.Fprintf(out, "Warning: required columns not found: %s\n",
			strings.Join(result.MissingRequired, ", "))
	}

	if err := store.New(gormDB).CreateTasks(result.Tasks); err != nil {
		return err
	}
	fmt.Fprintf(out, "Imported %d tasks from %s\n", len(result.Tasks), filepath.Base(path))
	return nil
}

func newImportGitHubCmd() *cobra.Command {
	var (
		configPath string
		login      bool
	)

	cmd := &cobra.Command{
		Use:   "github",
		Short: "Import tasks from GitHub issues",
		Long:  "Imports the configured repository's issues as tasks. Open issues arrive as Not Done, closed ones as Done; milestone due dates become task due dates.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportGitHub(cmd, configPath, login)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Followup config file")
	cmd.Flags().BoolVar(&login, "login", false, "prompt for a GitHub token instead of reading github.token_file")
	return cmd
}

func runImportGitHub(cmd *cobra.Command, configPath string, login bool) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	token := ""
	switch {
	case login:
		token, err = promptToken(cmd)
		if err != nil {
			return err
		}
	case cfg.GitHub.TokenFile != "":
		data, err := os.ReadFile(cfg.GitHub.TokenFile)
		if err != nil {
			return fmt.Errorf("read github token file: %w", err)
		}
		token = strings.TrimSpace(string(data))
	}

	gh, err := importer.NewGitHub(importer.GitHubOpts{
		Owner: cfg.GitHub.Owner,
		Repo:  cfg.GitHub.Repo,
		Token: token,
	})
	if err != nil {
		return err
	}

	tasks, err := gh.Fetch(cmd.Context())
	if err != nil {
		return err
	}
	if err := store.New(gormDB).CreateTasks(tasks); err != nil {
		return err
	}
	fmt.Fprintf(out, "Imported %d tasks from %s/%s\n", len(tasks), cfg.GitHub.Owner, cfg.GitHub.Repo)
	return nil
}

// promptToken reads a GitHub token without echoing it. Falls back to a
// plain line read when stdin is not a terminal (tests, pipes).
func promptToken(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "GitHub token: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		data, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	var line string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &line); err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(line), nil
}
