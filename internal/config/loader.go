package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.burden.yaml",               // Project-specific config (highest priority)
	"~/.config/burden/config.yaml", // User config
	"/etc/burden/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	getenv      func(string) string
	warn        func(format string, args ...interface{})
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		getenv:      os.Getenv,
		warn: func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
		},
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.burden.yaml
// 4. ~/.config/burden/config.yaml
// 5. /etc/burden/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			path := expandPath(l.configPaths[i])
			if !fileExists(path) {
				continue
			}
			if err := loadFromFile(config, path); err != nil {
				l.warn("Failed to load config from %s: %v", path, err)
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile decodes a YAML file over config; keys absent from the
// file keep their current values.
func loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated or comes from the fixed search list
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// applyEnvOverrides applies BURDEN_* environment variables to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		"BURDEN_CARGO_BINARY":      func(v string) error { config.Cargo.Binary = v; return nil },
		"BURDEN_CARGO_WORKING_DIR": func(v string) error { config.Cargo.WorkingDir = v; return nil },
		"BURDEN_CARGO_COLOR":       func(v string) error { config.Cargo.Color = v; return nil },

		"BURDEN_PAGER_POLICY":      func(v string) error { config.Pager.Policy = v; return nil },
		"BURDEN_PAGER_GRACE_DELAY": func(v string) error { return parseDuration(v, &config.Pager.GraceDelay) },
		"BURDEN_PAGER_ALT_SCREEN":  func(v string) error { return parseBool(v, &config.Pager.AltScreen) },
		"BURDEN_PAGER_THEME":       func(v string) error { config.Pager.Theme = v; return nil },

		"BURDEN_OUTPUT_VERBOSE":  func(v string) error { return parseBool(v, &config.Output.Verbose) },
		"BURDEN_OUTPUT_NO_PAGER": func(v string) error { return parseBool(v, &config.Output.NoPager) },
		"BURDEN_OUTPUT_SUMMARY":  func(v string) error { return parseBool(v, &config.Output.Summary) },
		"BURDEN_OUTPUT_FORMAT":   func(v string) error { config.Output.Format = v; return nil },

		"BURDEN_WATCH_ENABLED":  func(v string) error { return parseBool(v, &config.Watch.Enabled) },
		"BURDEN_WATCH_DEBOUNCE": func(v string) error { return parseDuration(v, &config.Watch.Debounce) },
	}

	for envVar, setter := range envMappings {
		if value := l.getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	// comma-separated list
	if paths := l.getenv("BURDEN_WATCH_PATHS"); paths != "" {
		config.Watch.Paths = nil
		for _, p := range strings.Split(paths, ",") {
			if p = strings.TrimSpace(p); p != "" {
				config.Watch.Paths = append(config.Watch.Paths, p)
			}
		}
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range GetConfigPaths() {
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

// SampleConfig returns a commented configuration file with every option
func SampleConfig() string {
	return `# burden configuration
version: "1.0"

cargo:
  # executable invoked for build, check, run and clippy
  binary: cargo
  working_dir: .
  # auto | always | never
  color: always

pager:
  # coded: only messages with a diagnostic code, stop at build-finished
  # rendered: every message with rendered text, read until cargo exits
  policy: coded
  grace_delay: 100ms
  alt_screen: true
  # default | high-contrast | minimal
  theme: default

output:
  verbose: false
  # print diagnostics instead of paging them
  no_pager: false
  # print a summary to stderr after paging
  summary: false
  # text | json
  format: text

watch:
  enabled: false
  debounce: 300ms
  paths:
    - src
    - Cargo.toml
`
}
