package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/yildizm/burden/internal/config"
	"github.com/yildizm/burden/internal/logger"
)

// ExitError carries the wrapped cargo's exit status to main
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// exitCodeError converts a run result into the error cobra returns
func exitCodeError(code int, err error) error {
	if err != nil {
		return err
	}
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

type rootOptions struct {
	version string
	commit  string
	date    string

	configFile  string
	color       string
	workingDir  string
	policy      string
	theme       string
	verbose     bool
	noPager     bool
	summary     bool
	watch       bool
	showVersion bool

	cfg *config.Config
	log *logger.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	return newRootCommand(newRootOptions(version, commit, date))
}

func newRootOptions(version, commit, date string) *rootOptions {
	return &rootOptions{
		version: version,
		commit:  commit,
		date:    date,
		cfg:     config.DefaultConfig(),
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	opts.log = logger.New("burden", func() bool { return opts.cfg.Output.Verbose })
	opts.log.SetOutput(opts.stderr)

	rootCmd := &cobra.Command{
		Use:   "burden [options] <command> [cargo options]",
		Short: "Error/Warning Pager for Cargo",
		Long: `burden runs a cargo command, collects the compiler's diagnostics and
shows them one at a time in an interactive pager.

Everything after the cargo command is passed to cargo unchanged, except
--color and --message-format which burden sets itself.`,
		Example: `  burden check
  burden --color never build --release
  burden --working-dir ../app clippy -- -W clippy::pedantic
  burden --watch check`,
		Args:              cobra.NoArgs,
		TraverseChildren:  true,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				return opts.printVersion(cmd.Context())
			}
			return cmd.Help()
		},
	}
	rootCmd.SetIn(opts.stdin)
	rootCmd.SetOut(opts.stdout)
	rootCmd.SetErr(opts.stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.color, "color", "always", "coloring: auto, always, never")
	flags.StringVar(&opts.workingDir, "working-dir", ".", "directory to run cargo in")
	flags.BoolVarP(&opts.showVersion, "version", "V", false, "print version info and exit")
	flags.StringVar(&opts.configFile, "config", "", "config file path")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.policy, "policy", "coded", "diagnostic selection: coded, rendered")
	flags.StringVar(&opts.theme, "theme", "default", "pager theme: default, high-contrast, minimal")
	flags.BoolVar(&opts.noPager, "no-pager", false, "print diagnostics instead of paging them")
	flags.BoolVar(&opts.summary, "summary", false, "print a diagnostic summary to stderr")
	flags.BoolVar(&opts.watch, "watch", false, "run again whenever watched files change")

	for _, sub := range cargoSubcommands {
		rootCmd.AddCommand(newCargoCommand(opts, sub))
	}
	rootCmd.AddCommand(newConfigCommand(opts))
	rootCmd.AddCommand(newVersionCommand(opts))

	return rootCmd
}

// loadConfig builds the effective configuration. Flags set on the
// command line override files and environment.
func (o *rootOptions) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().LoadConfig(o.configFile)
	if err != nil {
		return err
	}

	flags := cmd.Root().PersistentFlags()
	if flags.Changed("color") {
		cfg.Cargo.Color = o.color
	}
	if flags.Changed("working-dir") {
		cfg.Cargo.WorkingDir = o.workingDir
	}
	if flags.Changed("policy") {
		cfg.Pager.Policy = o.policy
	}
	if flags.Changed("theme") {
		cfg.Pager.Theme = o.theme
	}
	if flags.Changed("verbose") {
		cfg.Output.Verbose = o.verbose
	}
	if flags.Changed("no-pager") {
		cfg.Output.NoPager = o.noPager
	}
	if flags.Changed("summary") {
		cfg.Output.Summary = o.summary
	}
	if flags.Changed("watch") {
		cfg.Watch.Enabled = o.watch
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	applyColorMode(cfg.Cargo.Color)

	o.log.Debug("configuration loaded",
		logger.F("cargo", cfg.Cargo.Binary),
		logger.F("dir", cfg.Cargo.WorkingDir),
		logger.F("policy", cfg.Pager.Policy))
	return nil
}

// printVersion prints burden's version followed by cargo's
func (o *rootOptions) printVersion(ctx context.Context) error {
	fmt.Fprintf(o.stdout, "burden %s (%s) / ", displayVersion(o.version), displayDate(o.date))

	// #nosec G204 - the binary comes from the user's own configuration
	cmd := exec.CommandContext(ctx, o.cfg.Cargo.Binary, "-V")
	cmd.Dir = o.cfg.Cargo.WorkingDir
	out, err := cmd.Output()
	if err != nil {
		fmt.Fprintln(o.stdout)
		return fmt.Errorf("failed to query %s version: %w", o.cfg.Cargo.Binary, err)
	}
	_, err = o.stdout.Write(out)
	return err
}

func newVersionCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			displayCommit := opts.commit
			if displayCommit == "none" || displayCommit == "" {
				displayCommit = "local-build"
			}

			fmt.Fprintf(opts.stdout, "burden %s (%s) built on %s\n",
				displayVersion(opts.version), displayCommit, displayDate(opts.date))
			fmt.Fprintf(opts.stdout, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(opts.stdout, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func displayVersion(version string) string {
	if version == "dev" || version == "" {
		return "development"
	}
	return version
}

func displayDate(date string) string {
	if date == "unknown" || date == "" {
		return "local-build"
	}
	return date
}

// Execute runs the command line and returns the process exit status
func Execute(ctx context.Context, version, commit, date string, args []string) int {
	return execute(ctx, newRootOptions(version, commit, date), args)
}

func execute(ctx context.Context, opts *rootOptions, args []string) int {
	rootCmd := newRootCommand(opts)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, context.Canceled) {
		return 130
	}
	printError(opts.stderr, err.Error())
	return 1
}
