// ============================================================================
// KeplerKV - Key-Value Store with Query Language
// ============================================================================
//
// Package:     config
// Description: Typed configuration loaded from TOML or YAML with .env and
//              KEPLER_* environment overrides
// Author:      Mike Stoffels
// Created:     2026-10-08
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	kverror "github.com/msto63/keplerkv/foundation/core/error"
	kvlog "github.com/msto63/keplerkv/foundation/core/log"
	"github.com/msto63/keplerkv/foundation/kql/registry"
	"github.com/msto63/keplerkv/foundation/kql/store"
)

// EnvConfig names the environment variable holding the config file path
const EnvConfig = "KEPLER_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Store   StoreConfig   `toml:"store" yaml:"store"`
	REPL    REPLConfig    `toml:"repl" yaml:"repl"`
	History HistoryConfig `toml:"history" yaml:"history"`
	Log     LogConfig     `toml:"log" yaml:"log"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name    string `toml:"name" yaml:"name"`
	DataDir string `toml:"data_dir" yaml:"data_dir"`
}

// StoreConfig holds store and save file settings
type StoreConfig struct {
	DefaultSaveFile string `toml:"default_save_file" yaml:"default_save_file"`
	LoadPolicy      string `toml:"load_policy" yaml:"load_policy"`
	MaxInputLength  int    `toml:"max_input_length" yaml:"max_input_length"`
}

// REPLConfig holds interactive session settings
type REPLConfig struct {
	Prompt  string            `toml:"prompt" yaml:"prompt"`
	Silent  bool              `toml:"silent" yaml:"silent"`
	Color   *bool             `toml:"color" yaml:"color"`
	Aliases map[string]string `toml:"aliases" yaml:"aliases"`
}

// HistoryConfig holds query journal settings
type HistoryConfig struct {
	Enabled   *bool    `toml:"enabled" yaml:"enabled"`
	Backend   string   `toml:"backend" yaml:"backend"`
	Path      string   `toml:"path" yaml:"path"`
	Retention Duration `toml:"retention" yaml:"retention"`
	Limit     int      `toml:"limit" yaml:"limit"`
}

// LogConfig holds diagnostic logging settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	File   string `toml:"file" yaml:"file"`
	Audit  bool   `toml:"audit" yaml:"audit"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()
	return &cfg, nil
}

// Discover finds and loads the configuration. An explicit path wins, then
// KEPLER_CONFIG, then the default locations. Without any file the defaults
// are used. A .env file in the working directory is loaded first, and
// KEPLER_* variables override file values. The returned path is empty when
// no file was read.
func Discover(explicit string) (*Config, string, error) {
	_ = godotenv.Load()

	path := explicit
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		for _, p := range defaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, path, err
		}
		cfg = loaded
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func defaultPaths() []string {
	paths := []string{
		"./kepler.toml",
		"./kepler.yaml",
		"./kepler.yml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "keplerkv", "config.toml"))
	}
	return paths
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "KeplerKV"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "."
	}

	// Store
	if c.Store.DefaultSaveFile == "" {
		c.Store.DefaultSaveFile = store.DefaultSaveFile
	}
	if c.Store.LoadPolicy == "" {
		c.Store.LoadPolicy = store.LoadMerge.String()
	}
	if c.Store.MaxInputLength == 0 {
		c.Store.MaxInputLength = 64 * 1024
	}

	// REPL
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "> "
	}
	if c.REPL.Color == nil {
		c.REPL.Color = boolPtr(true)
	}

	// History
	if c.History.Enabled == nil {
		c.History.Enabled = boolPtr(true)
	}
	if c.History.Backend == "" {
		c.History.Backend = "sqlite"
	}
	if c.History.Path == "" {
		c.History.Path = filepath.Join(c.General.DataDir, "kepler_history.db")
	}
	if c.History.Retention.Duration == 0 {
		c.History.Retention.Duration = 30 * 24 * time.Hour
	}
	if c.History.Limit == 0 {
		c.History.Limit = 20
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = kvlog.DefaultLevel().String()
	}
	if c.Log.Format == "" {
		c.Log.Format = kvlog.FormatText.String()
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.History.Path = os.ExpandEnv(c.History.Path)
	c.Log.File = os.ExpandEnv(c.Log.File)
}

// applyEnvOverrides applies KEPLER_* environment variables
func (c *Config) applyEnvOverrides() error {
	strs := map[string]*string{
		"KEPLER_DATA_DIR":     &c.General.DataDir,
		"KEPLER_SAVE_FILE":    &c.Store.DefaultSaveFile,
		"KEPLER_LOAD_POLICY":  &c.Store.LoadPolicy,
		"KEPLER_PROMPT":       &c.REPL.Prompt,
		"KEPLER_HISTORY_PATH": &c.History.Path,
		"KEPLER_LOG_LEVEL":    &c.Log.Level,
		"KEPLER_LOG_FORMAT":   &c.Log.Format,
		"KEPLER_LOG_FILE":     &c.Log.File,
	}
	for env, field := range strs {
		if v, ok := os.LookupEnv(env); ok {
			*field = v
		}
	}

	bools := map[string]**bool{
		"KEPLER_COLOR":           &c.REPL.Color,
		"KEPLER_HISTORY_ENABLED": &c.History.Enabled,
	}
	for env, field := range bools {
		v, ok := os.LookupEnv(env)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return kverror.Newf("%s: invalid boolean %q", env, v).
				WithCode(kverror.CodeConfigError)
		}
		*field = boolPtr(b)
	}

	if v, ok := os.LookupEnv("KEPLER_AUDIT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return kverror.Newf("KEPLER_AUDIT: invalid boolean %q", v).
				WithCode(kverror.CodeConfigError)
		}
		c.Log.Audit = b
	}
	return nil
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if _, err := store.ParseLoadPolicy(c.Store.LoadPolicy); err != nil {
		return err
	}
	if c.Store.MaxInputLength < 0 {
		return kverror.Newf("store.max_input_length must not be negative, got %d", c.Store.MaxInputLength).
			WithCode(kverror.CodeConfigError)
	}
	if _, err := kvlog.ParseLevel(c.Log.Level); err != nil {
		return kverror.Wrap(err, "log.level").WithCode(kverror.CodeConfigError)
	}
	if _, err := kvlog.ParseFormat(c.Log.Format); err != nil {
		return kverror.Wrap(err, "log.format").WithCode(kverror.CodeConfigError)
	}
	switch c.History.Backend {
	case "sqlite", "memory":
	default:
		return kverror.Newf("history.backend must be sqlite or memory, got %q", c.History.Backend).
			WithCode(kverror.CodeConfigError)
	}
	if c.History.Limit < 0 {
		return kverror.Newf("history.limit must not be negative, got %d", c.History.Limit).
			WithCode(kverror.CodeConfigError)
	}
	if _, err := registry.New(registry.Options{Aliases: c.REPL.Aliases, Logger: kvlog.NewNop()}); err != nil {
		return err
	}
	return nil
}

// LoadPolicy returns the parsed store load policy
func (c *Config) LoadPolicy() store.LoadPolicy {
	policy, _ := store.ParseLoadPolicy(c.Store.LoadPolicy)
	return policy
}

// ColorEnabled reports whether styled output is wanted
func (c *Config) ColorEnabled() bool {
	return c.REPL.Color == nil || *c.REPL.Color
}

// HistoryEnabled reports whether queries are journaled
func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

func boolPtr(b bool) *bool {
	return &b
}
