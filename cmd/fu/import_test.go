package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestImportCmd_Help(t *testing.T) {
	out, err := run(t, "import", "--help")
	if err != nil {
		t.Fatalf("import --help failed: %v", err)
	}
	for _, sub := range []string{"csv", "github"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help to list %q subcommand, got: %s", sub, out)
		}
	}
}

func TestImportCSV(t *testing.T) {
	cfgPath := initDB(t)

	csvPath := filepath.Join(t.TempDir(), "tasks.csv")
	raw := strings.Join([]string{
		"Task,Deadline,Owner,Status",
		"Quarterly report,2024-01-05,Sara,pending",
		"Vendor review,2024-03-01,Omar,done",
	}, "\n")
	if err := os.WriteFile(csvPath, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "import", "csv", csvPath, "--config", cfgPath)
	if err != nil {
		t.Fatalf("import csv failed: %v", err)
	}
	if !strings.Contains(out, "Imported 2 tasks from tasks.csv") {
		t.Errorf("unexpected import output: %s", out)
	}
	if strings.Contains(out, "Warning") {
		t.Errorf("unexpected warning: %s", out)
	}

	listOut, err := run(t, "task", "list", "--config", cfgPath, "--today", "2024-02-01")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Quarterly report", "Vendor review", "Overdue", "Done"} {
		if !strings.Contains(listOut, want) {
			t.Errorf("expected list to contain %q, got: %s", want, listOut)
		}
	}
}

func TestImportCSV_WarnsOnMissingColumns(t *testing.T) {
	cfgPath := initDB(t)

	csvPath := filepath.Join(t.TempDir(), "partial.csv")
	if err := os.WriteFile(csvPath, []byte("Owner\nSara\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "import", "csv", csvPath, "--config", cfgPath)
	if err != nil {
		t.Fatalf("import csv failed: %v", err)
	}
	if !strings.Contains(out, "Warning: required columns not found") {
		t.Errorf("expected missing-column warning, got: %s", out)
	}
	if !strings.Contains(out, "Task") || !strings.Contains(out, "DueDate") {
		t.Errorf("expected warning to name Task and DueDate, got: %s", out)
	}
}

func TestImportCSV_MissingFile(t *testing.T) {
	cfgPath := initDB(t)
	if _, err := run(t, "import", "csv", "/nonexistent/tasks.csv", "--config", cfgPath); err == nil {
		t.Error("expected error for missing csv file")
	}
}

func TestImportGitHubCmd_Flags(t *testing.T) {
	cmd := newImportGitHubCmd()
	if cmd.Use != "github" {
		t.Errorf("Use = %q, want %q", cmd.Use, "github")
	}
	flag := cmd.Flags().Lookup("login")
	if flag == nil {
		t.Fatal("expected --login flag")
	}
	if flag.DefValue != "false" {
		t.Errorf("--login default = %q, want false", flag.DefValue)
	}
}

func TestImportGitHub_RequiresOwnerRepo(t *testing.T) {
	// Config with no github section: the importer refuses to start.
	cfgPath := initDB(t)
	_, err := run(t, "import", "github", "--config", cfgPath)
	if err == nil {
		t.Fatal("expected error without github owner/repo configured")
	}
	if !strings.Contains(err.Error(), "owner and repo are required") {
		t.Errorf("error = %q, want owner/repo requirement", err.Error())
	}
}
