package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", cfg.Version)
	}
	if cfg.Cargo.Binary != "cargo" {
		t.Errorf("Expected cargo binary, got %s", cfg.Cargo.Binary)
	}
	if cfg.Cargo.Color != "always" {
		t.Errorf("Expected color always, got %s", cfg.Cargo.Color)
	}
	if cfg.Pager.Policy != "coded" {
		t.Errorf("Expected coded policy, got %s", cfg.Pager.Policy)
	}
	if cfg.Pager.GraceDelay != 100*time.Millisecond {
		t.Errorf("Expected 100ms grace delay, got %v", cfg.Pager.GraceDelay)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config must be valid: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{
			name:   "valid config",
			modify: func(c *Config) {},
		},
		{
			name:   "empty binary",
			modify: func(c *Config) { c.Cargo.Binary = "" },
			errMsg: "cargo binary must not be empty",
		},
		{
			name:   "invalid color mode",
			modify: func(c *Config) { c.Cargo.Color = "sometimes" },
			errMsg: "invalid color mode: sometimes (must be one of: auto, always, never)",
		},
		{
			name:   "invalid policy",
			modify: func(c *Config) { c.Pager.Policy = "all" },
			errMsg: "invalid policy: all (must be one of: coded, rendered)",
		},
		{
			name:   "negative grace delay",
			modify: func(c *Config) { c.Pager.GraceDelay = -time.Second },
			errMsg: "grace_delay must be non-negative",
		},
		{
			name:   "invalid theme",
			modify: func(c *Config) { c.Pager.Theme = "neon" },
			errMsg: "invalid theme: neon (must be one of: default, high-contrast, minimal)",
		},
		{
			name:   "invalid output format",
			modify: func(c *Config) { c.Output.Format = "markdown" },
			errMsg: "invalid output format: markdown (must be one of: text, json)",
		},
		{
			name:   "zero debounce",
			modify: func(c *Config) { c.Watch.Debounce = 0 },
			errMsg: "debounce must be greater than 0",
		},
		{
			name: "watch without paths",
			modify: func(c *Config) {
				c.Watch.Enabled = true
				c.Watch.Paths = nil
			},
			errMsg: "watch requires at least one path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error %q but got none", tt.errMsg)
			}
			if err.Error() != tt.errMsg {
				t.Errorf("Expected error message '%s', got '%s'", tt.errMsg, err.Error())
			}
		})
	}
}
