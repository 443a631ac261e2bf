// Package config provides YAML-based configuration loading for Followup.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Followup configuration, loaded from
// followup.yaml.
type Config struct {
	Timezone    string          `yaml:"timezone"`
	DueSoonDays int             `yaml:"due_soon_days"`
	DB          DBConfig        `yaml:"db"`
	Report      ReportConfig    `yaml:"report"`
	Digest      DigestConfig    `yaml:"digest"`
	GitHub      GitHubConfig    `yaml:"github"`
	SLAPolicies []SLAPolicySeed `yaml:"sla_policies"`
}

// DBConfig selects and configures the backing store.
type DBConfig struct {
	Driver   string `yaml:"driver"` // sqlite or mysql
	Path     string `yaml:"path"`   // sqlite file path
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// ReportConfig controls workbook output.
type ReportConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// DigestConfig controls the scheduled KPI digest.
type DigestConfig struct {
	Cron    string        `yaml:"cron"` // 5-field cron expression
	Slack   SlackConfig   `yaml:"slack"`
	Discord DiscordConfig `yaml:"discord"`
}

// SlackConfig holds Slack posting credentials.
type SlackConfig struct {
	BotToken string `yaml:"bot_token"`
	Channel  string `yaml:"channel"`
}

// DiscordConfig holds Discord posting credentials.
type DiscordConfig struct {
	BotToken string `yaml:"bot_token"`
	Channel  string `yaml:"channel"`
}

// GitHubConfig points the issue importer at a repository.
type GitHubConfig struct {
	Owner     string `yaml:"owner"`
	Repo      string `yaml:"repo"`
	TokenFile string `yaml:"token_file"`
}

// SLAPolicySeed is one policy row seeded into the store at init time.
type SLAPolicySeed struct {
	Category   string `yaml:"category"`
	Priority   string `yaml:"priority"`
	TargetDays int    `yaml:"target_days"`
	Notes      string `yaml:"notes"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Timezone == "" {
		c.Timezone = "Asia/Riyadh"
	}
	if c.DueSoonDays == 0 {
		c.DueSoonDays = 3
	}
	if c.DB.Driver == "" {
		c.DB.Driver = "sqlite"
	}
	if c.DB.Driver == "sqlite" && c.DB.Path == "" {
		c.DB.Path = "followup.db"
	}
	if c.DB.Driver == "mysql" {
		if c.DB.Host == "" {
			c.DB.Host = "127.0.0.1"
		}
		if c.DB.Port == 0 {
			c.DB.Port = 3306
		}
		if c.DB.User == "" {
			c.DB.User = "root"
		}
	}
	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "."
	}
	if c.Digest.Cron == "" {
		c.Digest.Cron = "0 8 * * 1"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.DueSoonDays < 1 {
		errs = append(errs, "due_soon_days must be at least 1")
	}
	switch c.DB.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Sprintf("db.driver %q is not supported (sqlite, mysql)", c.DB.Driver))
	}
	if c.DB.Driver == "mysql" && c.DB.Database == "" {
		errs = append(errs, "db.database is required for the mysql driver")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Sprintf("timezone %q is not a valid IANA name", c.Timezone))
	}
	for i, p := range c.SLAPolicies {
		if p.TargetDays < 1 {
			errs = append(errs, fmt.Sprintf("sla_policies[%d].target_days must be at least 1", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Location resolves the configured timezone. Validation has already
// checked the name, so failures here are unexpected.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
