package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yildizm/burden/internal/config"
	"gopkg.in/yaml.v3"
)

// newConfigCommand creates the config command with subcommands
func newConfigCommand(opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage burden configuration",
		Long: `Manage burden configuration files and settings.

The config command provides subcommands for initializing, viewing,
validating, and locating configuration files.`,
		// config subcommands load configuration themselves so that a
		// broken file can still be located and replaced
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}

	configCmd.AddCommand(newConfigInitCommand(opts))
	configCmd.AddCommand(newConfigShowCommand(opts))
	configCmd.AddCommand(newConfigValidateCommand(opts))
	configCmd.AddCommand(newConfigPathCommand(opts))

	return configCmd
}

// newConfigInitCommand creates the config init subcommand
func newConfigInitCommand(opts *rootOptions) *cobra.Command {
	var (
		outputPath string
		force      bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new configuration file",
		Long:  `Initialize a new burden configuration file with every option and its default value.`,
		Example: `  # Create config in current directory
  burden config init

  # Create config at specific path
  burden config init --output ~/.config/burden/config.yaml

  # Overwrite existing config
  burden config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				outputPath = ".burden.yaml"
			}

			if !force && fileExists(outputPath) {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", outputPath)
			}

			dir := filepath.Dir(outputPath)
			if dir != "." && dir != "/" {
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}

			if err := os.WriteFile(outputPath, []byte(config.SampleConfig()), 0o600); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			fmt.Fprintf(opts.stdout, "Configuration file created at: %s\n", outputPath)
			return nil
		},
	}

	initCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path for config file (default: .burden.yaml)")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing config file")

	return initCmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand(opts *rootOptions) *cobra.Command {
	var format string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the current effective configuration after loading from all sources.

Shows the merged configuration from defaults, config files, environment
variable overrides and global flags.`,
		Example: `  # Show config in YAML format
  burden config show

  # Show config in JSON format
  burden config show --format json

  # Show config from specific file
  burden --config /path/to/config.yaml config show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.loadConfig(cmd); err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			switch format {
			case "json":
				data, err := json.MarshalIndent(opts.cfg, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal config to JSON: %w", err)
				}
				fmt.Fprintln(opts.stdout, string(data))
			case "yaml":
				data, err := yaml.Marshal(opts.cfg)
				if err != nil {
					return fmt.Errorf("failed to marshal config to YAML: %w", err)
				}
				fmt.Fprint(opts.stdout, string(data))
			default:
				return fmt.Errorf("unsupported format: %s (use json or yaml)", format)
			}

			return nil
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json)")

	return showCmd
}

// newConfigValidateCommand creates the config validate subcommand
func newConfigValidateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Long: `Validate the effective burden configuration for syntax and semantic errors.

Checks for valid YAML syntax, known enum values and positive durations.`,
		Example: `  # Validate current config
  burden config validate

  # Validate specific config file
  burden --config /path/to/config.yaml config validate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.loadConfig(cmd); err != nil {
				return err
			}

			cfg := opts.cfg
			fmt.Fprintln(opts.stdout, "Configuration is valid")
			fmt.Fprintf(opts.stdout, "  Cargo: %s (color %s)\n", cfg.Cargo.Binary, cfg.Cargo.Color)
			fmt.Fprintf(opts.stdout, "  Policy: %s\n", cfg.Pager.Policy)
			fmt.Fprintf(opts.stdout, "  Theme: %s\n", cfg.Pager.Theme)
			fmt.Fprintf(opts.stdout, "  Watch paths: %d configured\n", len(cfg.Watch.Paths))
			return nil
		},
	}
}

// newConfigPathCommand creates the config path subcommand
func newConfigPathCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file search paths",
		Long: `Display the list of paths burden searches for configuration files.

Shows the search order and indicates which files exist.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := opts.stdout
			fmt.Fprintln(out, "Configuration file search paths (in priority order):")
			fmt.Fprintln(out)

			priority := []string{"Highest", "Medium", "Lowest"}
			for i, path := range config.GetConfigPaths() {
				exists := " (not found)"
				if fileExists(path) {
					exists = " (exists)"
				}

				fmt.Fprintf(out, "  %d. %s%s\n", i+1, path, exists)
				if i < len(priority) {
					fmt.Fprintf(out, "     Priority: %s\n", priority[i])
				}
			}
			fmt.Fprintln(out)

			if current, found := config.FindConfigFile(); found {
				fmt.Fprintf(out, "Current config file: %s\n", current)
			} else {
				fmt.Fprintln(out, "No config file found, using defaults")
			}
			fmt.Fprintln(out, "Environment variables with BURDEN_ prefix override file settings")
		},
	}
}

func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
