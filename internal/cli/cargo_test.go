package cli

import (
	"reflect"
	"testing"
)

func TestBuildInvocation(t *testing.T) {
	build := cargoSubcommands[0]

	tests := []struct {
		name         string
		args         []string
		colorMode    string
		expectedArgs []string
		warnings     int
		help         bool
	}{
		{
			name:         "ansi rendering when color is always",
			colorMode:    "always",
			expectedArgs: []string{"build", "--message-format=json-diagnostic-rendered-ansi", "--color=always"},
		},
		{
			name:         "auto behaves like always",
			colorMode:    "auto",
			expectedArgs: []string{"build", "--message-format=json-diagnostic-rendered-ansi", "--color=always"},
		},
		{
			name:         "plain json when color is never",
			colorMode:    "never",
			expectedArgs: []string{"build", "--message-format=json", "--color=never"},
		},
		{
			name:         "other arguments are forwarded in order",
			args:         []string{"--release", "-p", "core"},
			colorMode:    "never",
			expectedArgs: []string{"build", "--message-format=json", "--color=never", "--release", "-p", "core"},
		},
		{
			name:         "separate color value is dropped",
			args:         []string{"--color", "never", "--release"},
			colorMode:    "always",
			expectedArgs: []string{"build", "--message-format=json-diagnostic-rendered-ansi", "--color=always", "--release"},
			warnings:     1,
		},
		{
			name:         "joined overrides are dropped",
			args:         []string{"--message-format=short", "--color=auto"},
			colorMode:    "never",
			expectedArgs: []string{"build", "--message-format=json", "--color=never"},
			warnings:     2,
		},
		{
			name:         "trailing override without value ends the arguments",
			args:         []string{"--release", "--message-format"},
			colorMode:    "never",
			expectedArgs: []string{"build", "--message-format=json", "--color=never", "--release"},
		},
		{
			name:         "arguments after the separator are untouched",
			args:         []string{"--", "--color", "never"},
			colorMode:    "never",
			expectedArgs: []string{"build", "--message-format=json", "--color=never", "--", "--color", "never"},
		},
		{
			name:         "help asks cargo for its own help",
			args:         []string{"--release", "-h"},
			colorMode:    "always",
			expectedArgs: []string{"build", "-h"},
			help:         true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := buildInvocation(build, tt.args, tt.colorMode)

			if !reflect.DeepEqual(inv.args, tt.expectedArgs) {
				t.Errorf("args = %q, want %q", inv.args, tt.expectedArgs)
			}
			if len(inv.warnings) != tt.warnings {
				t.Errorf("got %d warnings %q, want %d", len(inv.warnings), inv.warnings, tt.warnings)
			}
			if inv.help != tt.help {
				t.Errorf("help = %v, want %v", inv.help, tt.help)
			}
		})
	}
}

func TestBuildInvocationWarningText(t *testing.T) {
	inv := buildInvocation(cargoSubcommands[1], []string{"--color", "never", "--message-format=short"}, "always")

	expected := []string{
		"Found argument '--color <WHEN>' which is overridden by burden.",
		"Found argument '--message-format=<FMT>' which is overridden by burden.",
	}
	if !reflect.DeepEqual(inv.warnings, expected) {
		t.Errorf("warnings = %q, want %q", inv.warnings, expected)
	}
}

func TestOnlyRunForwardsProgramOutput(t *testing.T) {
	for _, sub := range cargoSubcommands {
		inv := buildInvocation(sub, nil, "always")
		if inv.passthrough != (sub.name == "run") {
			t.Errorf("%s: passthrough = %v", sub.name, inv.passthrough)
		}
	}
}
