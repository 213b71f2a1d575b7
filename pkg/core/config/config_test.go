package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	kverror "github.com/msto63/keplerkv/foundation/core/error"
	"github.com/msto63/keplerkv/foundation/kql/store"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"5s", 5 * time.Second, false},
		{"1m", time.Minute, false},
		{"720h", 720 * time.Hour, false},
		{"100ms", 100 * time.Millisecond, false},
		{"invalid", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Duration != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, d.Duration)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{Duration: 90 * time.Second}
	data, err := d.MarshalText()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "1m30s" {
		t.Errorf("expected 1m30s, got %s", data)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.General.Name != "KeplerKV" {
		t.Errorf("expected name KeplerKV, got %s", cfg.General.Name)
	}
	if cfg.Store.DefaultSaveFile != store.DefaultSaveFile {
		t.Errorf("expected save file %s, got %s", store.DefaultSaveFile, cfg.Store.DefaultSaveFile)
	}
	if cfg.LoadPolicy() != store.LoadMerge {
		t.Errorf("expected merge policy, got %s", cfg.LoadPolicy())
	}
	if cfg.Store.MaxInputLength != 64*1024 {
		t.Errorf("expected max input 65536, got %d", cfg.Store.MaxInputLength)
	}
	if cfg.REPL.Prompt != "> " {
		t.Errorf("expected prompt '> ', got %q", cfg.REPL.Prompt)
	}
	if !cfg.ColorEnabled() {
		t.Error("expected color enabled by default")
	}
	if !cfg.HistoryEnabled() {
		t.Error("expected history enabled by default")
	}
	if cfg.History.Backend != "sqlite" {
		t.Errorf("expected sqlite backend, got %s", cfg.History.Backend)
	}
	if cfg.History.Path != filepath.Join(".", "kepler_history.db") {
		t.Errorf("unexpected history path %s", cfg.History.Path)
	}
	if cfg.History.Retention.Duration != 30*24*time.Hour {
		t.Errorf("expected 30 day retention, got %v", cfg.History.Retention.Duration)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected log level warn, got %s", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("expected log format text, got %s", cfg.Log.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_TOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "kepler.toml")

	configContent := `
[general]
name = "Test"
data_dir = "/var/lib/kepler"

[store]
default_save_file = "snapshot"
load_policy = "replace"

[repl]
prompt = "kv> "
silent = true
color = false

[repl.aliases]
put = "SET"

[history]
backend = "memory"
retention = "48h"
limit = 5

[log]
level = "debug"
format = "json"
audit = true
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.General.Name != "Test" {
		t.Errorf("expected name Test, got %s", cfg.General.Name)
	}
	if cfg.Store.DefaultSaveFile != "snapshot" {
		t.Errorf("expected save file snapshot, got %s", cfg.Store.DefaultSaveFile)
	}
	if cfg.LoadPolicy() != store.LoadReplace {
		t.Errorf("expected replace policy, got %s", cfg.LoadPolicy())
	}
	if cfg.REPL.Prompt != "kv> " || !cfg.REPL.Silent || cfg.ColorEnabled() {
		t.Errorf("unexpected repl config: %+v", cfg.REPL)
	}
	if diff := cmp.Diff(map[string]string{"put": "SET"}, cfg.REPL.Aliases); diff != "" {
		t.Errorf("aliases mismatch (-want +got):\n%s", diff)
	}
	if cfg.History.Backend != "memory" || cfg.History.Limit != 5 {
		t.Errorf("unexpected history config: %+v", cfg.History)
	}
	if cfg.History.Retention.Duration != 48*time.Hour {
		t.Errorf("expected 48h retention, got %v", cfg.History.Retention.Duration)
	}
	// Path default follows the configured data dir
	if cfg.History.Path != filepath.Join("/var/lib/kepler", "kepler_history.db") {
		t.Errorf("unexpected history path %s", cfg.History.Path)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" || !cfg.Log.Audit {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("config should validate: %v", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "kepler.yaml")

	configContent := `
general:
  name: YAML
store:
  load_policy: merge
  max_input_length: 1024
history:
  enabled: false
  retention: 1h
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.General.Name != "YAML" {
		t.Errorf("expected name YAML, got %s", cfg.General.Name)
	}
	if cfg.Store.MaxInputLength != 1024 {
		t.Errorf("expected max input 1024, got %d", cfg.Store.MaxInputLength)
	}
	if cfg.HistoryEnabled() {
		t.Error("expected history disabled")
	}
	if cfg.History.Retention.Duration != time.Hour {
		t.Errorf("expected 1h retention, got %v", cfg.History.Retention.Duration)
	}
	// Defaults still applied
	if cfg.REPL.Prompt != "> " {
		t.Errorf("expected default prompt, got %q", cfg.REPL.Prompt)
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/kepler.toml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "broken.toml")
	if err := os.WriteFile(configPath, []byte("[general\nname = "), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("KEPLER_TEST_DIR", "/tmp/kepler")

	cfg := &Config{
		General: GeneralConfig{DataDir: "${KEPLER_TEST_DIR}/data"},
		History: HistoryConfig{Path: "$KEPLER_TEST_DIR/history.db"},
		Log:     LogConfig{File: "${KEPLER_TEST_DIR}/kepler.log"},
	}
	cfg.expandEnvVars()

	if cfg.General.DataDir != "/tmp/kepler/data" {
		t.Errorf("expected expanded data dir, got %s", cfg.General.DataDir)
	}
	if cfg.History.Path != "/tmp/kepler/history.db" {
		t.Errorf("expected expanded history path, got %s", cfg.History.Path)
	}
	if cfg.Log.File != "/tmp/kepler/kepler.log" {
		t.Errorf("expected expanded log file, got %s", cfg.Log.File)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("KEPLER_LOAD_POLICY", "replace")
	t.Setenv("KEPLER_LOG_LEVEL", "debug")
	t.Setenv("KEPLER_COLOR", "false")
	t.Setenv("KEPLER_AUDIT", "1")

	cfg := Default()
	if err := cfg.applyEnvOverrides(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Store.LoadPolicy != "replace" {
		t.Errorf("expected replace, got %s", cfg.Store.LoadPolicy)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug, got %s", cfg.Log.Level)
	}
	if cfg.ColorEnabled() {
		t.Error("expected color disabled")
	}
	if !cfg.Log.Audit {
		t.Error("expected audit enabled")
	}
}

func TestApplyEnvOverrides_InvalidBool(t *testing.T) {
	t.Setenv("KEPLER_HISTORY_ENABLED", "sometimes")

	err := Default().applyEnvOverrides()
	if !kverror.HasCode(err, kverror.CodeConfigError) {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"load policy", func(c *Config) { c.Store.LoadPolicy = "append" }},
		{"negative input length", func(c *Config) { c.Store.MaxInputLength = -1 }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"history backend", func(c *Config) { c.History.Backend = "postgres" }},
		{"negative history limit", func(c *Config) { c.History.Limit = -3 }},
		{"alias to unknown command", func(c *Config) { c.REPL.Aliases = map[string]string{"x": "NOPE"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDiscover_Explicit(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "custom.toml")
	if err := os.WriteFile(configPath, []byte("[general]\nname = \"Explicit\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv(EnvConfig, "/nonexistent/ignored.toml")

	cfg, path, err := Discover(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != configPath {
		t.Errorf("expected path %s, got %s", configPath, path)
	}
	if cfg.General.Name != "Explicit" {
		t.Errorf("expected name Explicit, got %s", cfg.General.Name)
	}
}

func TestDiscover_EnvVar(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "env.yaml")
	if err := os.WriteFile(configPath, []byte("general:\n  name: FromEnv\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv(EnvConfig, configPath)

	cfg, path, err := Discover("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != configPath || cfg.General.Name != "FromEnv" {
		t.Errorf("expected FromEnv from %s, got %s from %s", configPath, cfg.General.Name, path)
	}
}

func TestDiscover_NoConfigFound(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(EnvConfig, "")
	t.Setenv("HOME", tmpDir)
	chdir(t, tmpDir)

	cfg, path, err := Discover("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "" {
		t.Errorf("expected no config path, got %s", path)
	}
	if cfg.General.Name != "KeplerKV" {
		t.Errorf("expected defaults, got %s", cfg.General.Name)
	}
}

func TestDiscover_DotEnv(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(EnvConfig, "")
	t.Setenv("HOME", tmpDir)
	chdir(t, tmpDir)

	// godotenv never overrides variables that are already set, so make sure
	// the variable is unset and restored afterwards.
	t.Setenv("KEPLER_LOG_LEVEL", "")
	os.Unsetenv("KEPLER_LOG_LEVEL")

	if err := os.WriteFile(filepath.Join(tmpDir, ".env"), []byte("KEPLER_LOG_LEVEL=debug\n"), 0o644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	cfg, _, err := Discover("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level from .env, got %q", cfg.Log.Level)
	}
	os.Unsetenv("KEPLER_LOG_LEVEL")
}
