// Package config provides unified configuration loading for the freight
// extraction engine. Supports YAML files, environment variables, and
// programmatic overrides, following the teacher's config loading shape.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration recognized by the core (§6).
type Config struct {
	Thresholds ThresholdConfig `yaml:"thresholds"`
	Fields     FieldConfig     `yaml:"fields"`
	AI         AIConfig        `yaml:"ai"`
	Judge      JudgeConfig     `yaml:"judge"`
	Versions   VersionConfig   `yaml:"versions"`
	YearWindow YearWindowConfig `yaml:"year_window"`
	MaxTextChars int           `yaml:"max_text_chars"`

	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig controls the structured logger every component shares.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// ThresholdConfig holds the confidence bands used throughout the engine.
type ThresholdConfig struct {
	Low        int `yaml:"low"`
	Medium     int `yaml:"medium"`
	MediumHigh int `yaml:"medium_high"`
	High       int `yaml:"high"`
}

// FieldConfig declares the weighting classes for the orchestrator's
// overall-confidence calculation (§4.9 step 3).
type FieldConfig struct {
	Critical  []string `yaml:"critical_fields"`
	Important []string `yaml:"important_fields"`
}

// AIConfig controls C6 invocation.
type AIConfig struct {
	Enabled      bool          `yaml:"ai_enabled"`
	Model        string        `yaml:"model"`
	MaxTextChars int           `yaml:"ai_max_text_chars"`
	Deadline     time.Duration `yaml:"deadline"`
}

// JudgeConfig controls C8 invocation.
type JudgeConfig struct {
	Enabled            bool          `yaml:"judge_enabled"`
	HighValueDocTypes  []string      `yaml:"judge_high_value_doc_types"`
	MaxTextChars       int           `yaml:"judge_max_text_chars"`
	Deadline           time.Duration `yaml:"deadline"`
	ApproveThreshold   int           `yaml:"approve_threshold"`
	RejectThreshold    int           `yaml:"reject_threshold"`

	// AutoApplyCorrections, when true, has the orchestrator apply judge
	// suggested_value corrections immediately after C8 runs (§4.8
	// "Corrections application"). Off by default: application is
	// documented as optional, and callers may prefer to inspect the
	// judgement before deciding whether to apply it themselves via
	// pipeline.ApplyCorrections / pkg/extraction.Client.ApplyCorrections.
	AutoApplyCorrections bool `yaml:"auto_apply_corrections"`
}

// VersionConfig pins the catalog/schema-set versions for reproducibility.
type VersionConfig struct {
	CatalogVersion   int `yaml:"catalog_version"`
	SchemaSetVersion int `yaml:"schema_set_version"`
}

// YearWindowConfig bounds date plausibility (§3 invariant 3).
type YearWindowConfig struct {
	MinOffset int `yaml:"min_offset"`
	MaxOffset int `yaml:"max_offset"`
}

// DatabaseConfig configures the optional reference repository adapters
// (outside the core; see SPEC_FULL.md DOMAIN STACK).
type DatabaseConfig struct {
	Driver   string         `yaml:"driver"` // memory, sqlite or postgres
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path         string `yaml:"path"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// PostgresConfig holds Postgres-specific settings.
type PostgresConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// CacheConfig configures the optional result-memoization cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
	Redis   RedisConfig   `yaml:"redis"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// Default returns the configuration matching §6's documented defaults.
func Default() Config {
	return Config{
		Thresholds: ThresholdConfig{Low: 55, Medium: 70, MediumHigh: 82, High: 90},
		Fields: FieldConfig{
			Critical: []string{
				"booking_number", "bl_number", "container_number",
				"port_of_loading", "port_of_discharge", "etd", "eta",
			},
			Important: []string{
				"vessel_name", "voyage_number", "si_cutoff", "vgm_cutoff",
				"cargo_cutoff", "gate_cutoff", "shipper", "consignee",
			},
		},
		AI: AIConfig{
			Enabled:      true,
			Model:        "gpt-4o-mini",
			MaxTextChars: 10000,
			Deadline:     8 * time.Second,
		},
		Judge: JudgeConfig{
			Enabled: true,
			HighValueDocTypes: []string{
				"bill_of_lading", "mbl", "hbl", "arrival_notice", "customs_entry",
			},
			MaxTextChars:         10000,
			Deadline:             15 * time.Second,
			ApproveThreshold:     82,
			RejectThreshold:      55,
			AutoApplyCorrections: false,
		},
		Versions:     VersionConfig{CatalogVersion: 1, SchemaSetVersion: 1},
		YearWindow:   YearWindowConfig{MinOffset: 2, MaxOffset: 3},
		MaxTextChars: 10000,
		Database:     DatabaseConfig{Driver: "memory"},
		Cache:        CacheConfig{Enabled: false, TTL: 10 * time.Minute},
		Logging:      LoggingConfig{Level: "info", Format: "json"},
	}
}

// Load reads a YAML config file and applies environment variable
// overrides, mirroring the teacher's Load function in
// internal/config/config.go.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("EXTRACTION_AI_ENABLED"); v != "" {
		cfg.AI.Enabled = strings.EqualFold(v, "true") || v == "1"
	}
	if v := os.Getenv("EXTRACTION_JUDGE_ENABLED"); v != "" {
		cfg.Judge.Enabled = strings.EqualFold(v, "true") || v == "1"
	}
	if v := os.Getenv("EXTRACTION_DATABASE_DSN"); v != "" {
		cfg.Database.Postgres.DSN = v
	}
	if v := os.Getenv("EXTRACTION_REDIS_ADDR"); v != "" {
		cfg.Cache.Redis.Addr = v
	}
	if v := os.Getenv("EXTRACTION_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
