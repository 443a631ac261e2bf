package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestDBCmd_Help(t *testing.T) {
	out, err := run(t, "db", "--help")
	if err != nil {
		t.Fatalf("db --help failed: %v", err)
	}
	if !strings.Contains(out, "Database management") {
		t.Errorf("expected help to mention 'Database management', got: %s", out)
	}
	for _, sub := range []string{"init", "reset"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help to list %q subcommand, got: %s", sub, out)
		}
	}
}

func TestNewDBInitCmd(t *testing.T) {
	cmd := newDBInitCmd()
	if cmd.Use != "init" {
		t.Errorf("Use = %q, want %q", cmd.Use, "init")
	}
	flag := cmd.Flags().Lookup("config")
	if flag == nil {
		t.Fatal("expected --config flag")
	}
	if flag.DefValue != "followup.yaml" {
		t.Errorf("--config default = %q, want %q", flag.DefValue, "followup.yaml")
	}
	if flag.Shorthand != "c" {
		t.Errorf("--config shorthand = %q, want %q", flag.Shorthand, "c")
	}
}

func TestDBInitCmd_MissingConfig(t *testing.T) {
	_, err := run(t, "db", "init", "--config", "/nonexistent/followup.yaml")
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !strings.Contains(err.Error(), "load config") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "load config")
	}
}

func TestDBInitCmd_MigratesAndSeeds(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := run(t, "db", "init", "--config", cfgPath)
	if err != nil {
		t.Fatalf("db init failed: %v", err)
	}
	for _, want := range []string{"sqlite driver", "Migrated 5 tables", "Seeded 1 SLA policies", "initialized successfully"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got: %s", want, out)
		}
	}
}

func TestNewDBResetCmd(t *testing.T) {
	cmd := newDBResetCmd()
	if cmd.Use != "reset" {
		t.Errorf("Use = %q, want %q", cmd.Use, "reset")
	}
	tests := []struct {
		name, defValue, shorthand string
	}{
		{"config", "followup.yaml", "c"},
		{"yes", "false", "y"},
	}
	for _, tt := range tests {
		flag := cmd.Flags().Lookup(tt.name)
		if flag == nil {
			t.Fatalf("expected --%s flag", tt.name)
		}
		if flag.DefValue != tt.defValue {
			t.Errorf("--%s default = %q, want %q", tt.name, flag.DefValue, tt.defValue)
		}
		if flag.Shorthand != tt.shorthand {
			t.Errorf("--%s shorthand = %q, want %q", tt.name, flag.Shorthand, tt.shorthand)
		}
	}
}

func TestDBResetCmd_RequiresConfirmation(t *testing.T) {
	cfgPath := writeTestConfig(t)
	if _, err := run(t, "db", "init", "--config", cfgPath); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	// Anything other than "reset" aborts.
	cmd.SetIn(strings.NewReader("no\n"))
	cmd.SetArgs([]string{"db", "reset", "--config", cfgPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "deletes all Followup data") {
		t.Errorf("expected confirmation prompt, got: %s", out)
	}
	if !strings.Contains(out, "Aborted") {
		t.Errorf("expected 'Aborted' message, got: %s", out)
	}
}

func TestDBResetCmd_Yes(t *testing.T) {
	cfgPath := writeTestConfig(t)
	if _, err := run(t, "db", "init", "--config", cfgPath); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "task", "add", "--config", cfgPath, "--title", "doomed"); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "db", "reset", "--yes", "--config", cfgPath)
	if err != nil {
		t.Fatalf("db reset --yes failed: %v", err)
	}
	if !strings.Contains(out, "Followup database reset.") {
		t.Errorf("expected reset confirmation, got: %s", out)
	}

	listOut, err := run(t, "task", "list", "--config", cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(listOut, "No tasks found.") {
		t.Errorf("expected empty task list after reset, got: %s", listOut)
	}
}
