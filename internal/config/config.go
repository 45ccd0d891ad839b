package config

import (
	"fmt"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string       `yaml:"version" json:"version"`
	Cargo   CargoConfig  `yaml:"cargo" json:"cargo"`
	Pager   PagerConfig  `yaml:"pager" json:"pager"`
	Output  OutputConfig `yaml:"output" json:"output"`
	Watch   WatchConfig  `yaml:"watch" json:"watch"`
}

// CargoConfig configures how the build tool is invoked
type CargoConfig struct {
	Binary     string `yaml:"binary" json:"binary"`           // executable to run
	WorkingDir string `yaml:"working_dir" json:"working_dir"` // directory to run it in
	Color      string `yaml:"color" json:"color"`             // auto|always|never
}

// PagerConfig configures collection and the interactive pager
type PagerConfig struct {
	Policy     string        `yaml:"policy" json:"policy"`           // coded|rendered
	GraceDelay time.Duration `yaml:"grace_delay" json:"grace_delay"` // wait after build-finished
	AltScreen  bool          `yaml:"alt_screen" json:"alt_screen"`
	Theme      string        `yaml:"theme" json:"theme"` // default|high-contrast|minimal
}

// OutputConfig configures non-interactive output
type OutputConfig struct {
	Verbose bool   `yaml:"verbose" json:"verbose"`
	NoPager bool   `yaml:"no_pager" json:"no_pager"`
	Summary bool   `yaml:"summary" json:"summary"`
	Format  string `yaml:"format" json:"format"` // text|json
}

// WatchConfig configures re-running on file changes
type WatchConfig struct {
	Enabled  bool          `yaml:"enabled" json:"enabled"`
	Debounce time.Duration `yaml:"debounce" json:"debounce"`
	Paths    []string      `yaml:"paths" json:"paths"` // relative to the working directory
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Cargo: CargoConfig{
			Binary:     "cargo",
			WorkingDir: ".",
			Color:      "always",
		},
		Pager: PagerConfig{
			Policy:     "coded",
			GraceDelay: 100 * time.Millisecond,
			AltScreen:  true,
			Theme:      "default",
		},
		Output: OutputConfig{
			Format: "text",
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
			Paths:    []string{"src", "Cargo.toml"},
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateCargoConfig(); err != nil {
		return err
	}
	if err := c.validatePagerConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return c.validateWatchConfig()
}

func (c *Config) validateCargoConfig() error {
	if c.Cargo.Binary == "" {
		return fmt.Errorf("cargo binary must not be empty")
	}
	if !oneOf(c.Cargo.Color, "auto", "always", "never") {
		return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Cargo.Color)
	}
	return nil
}

func (c *Config) validatePagerConfig() error {
	if !oneOf(c.Pager.Policy, "coded", "rendered") {
		return fmt.Errorf("invalid policy: %s (must be one of: coded, rendered)", c.Pager.Policy)
	}
	if c.Pager.GraceDelay < 0 {
		return fmt.Errorf("grace_delay must be non-negative")
	}
	if c.Pager.Theme != "" && !oneOf(c.Pager.Theme, "default", "high-contrast", "minimal") {
		return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.Pager.Theme)
	}
	return nil
}

func (c *Config) validateOutputConfig() error {
	if !oneOf(c.Output.Format, "text", "json") {
		return fmt.Errorf("invalid output format: %s (must be one of: text, json)", c.Output.Format)
	}
	return nil
}

func (c *Config) validateWatchConfig() error {
	if c.Watch.Debounce <= 0 {
		return fmt.Errorf("debounce must be greater than 0")
	}
	if c.Watch.Enabled && len(c.Watch.Paths) == 0 {
		return fmt.Errorf("watch requires at least one path")
	}
	return nil
}

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
