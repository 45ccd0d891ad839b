package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// cargoSubcommand describes one wrapped cargo command
type cargoSubcommand struct {
	name    string
	aliases []string
	short   string
	// passthrough forwards the program's own stdout once diagnostics are done
	passthrough bool
}

var cargoSubcommands = []cargoSubcommand{
	{name: "build", aliases: []string{"b"}, short: "Compile the current package"},
	{name: "check", aliases: []string{"c"}, short: "Analyze the current package and report errors, but don't build object files"},
	{name: "run", aliases: []string{"r"}, short: "Run a binary or example of the local package", passthrough: true},
	{name: "clippy", short: "Checks a package to catch common mistakes and improve your Rust code"},
}

// invocation is a fully built cargo command line
type invocation struct {
	subcommand  string
	args        []string
	warnings    []string
	help        bool
	passthrough bool
}

// overriddenFlags are cargo options burden sets itself
var overriddenFlags = map[string]string{
	"--color":          "--color <WHEN>",
	"--message-format": "--message-format <FMT>",
}

// buildInvocation turns the user's cargo arguments into the command
// burden runs. Colour and message format flags are replaced; -h/--help
// asks cargo for the subcommand's own help instead.
func buildInvocation(sub cargoSubcommand, userArgs []string, colorMode string) invocation {
	inv := invocation{
		subcommand:  sub.name,
		passthrough: sub.passthrough,
	}
	inv.args = append([]string{sub.name}, messageFormatArgs(colorMode)...)

	for i := 0; i < len(userArgs); i++ {
		arg := userArgs[i]

		if arg == "--" {
			inv.args = append(inv.args, userArgs[i:]...)
			break
		}

		if display, ok := overriddenFlags[arg]; ok {
			if i+1 >= len(userArgs) {
				break
			}
			i++
			inv.warnings = append(inv.warnings, fmt.Sprintf("Found argument '%s' which is overridden by burden.", display))
			continue
		}

		if name, _, found := strings.Cut(arg, "="); found {
			if display, ok := overriddenFlags[name]; ok {
				display = strings.Replace(display, " ", "=", 1)
				inv.warnings = append(inv.warnings, fmt.Sprintf("Found argument '%s' which is overridden by burden.", display))
				continue
			}
		}

		if arg == "-h" || arg == "--help" {
			inv.help = true
			inv.args = []string{sub.name, arg}
			return inv
		}

		inv.args = append(inv.args, arg)
	}

	return inv
}

// messageFormatArgs selects the JSON flavour matching the colour mode
func messageFormatArgs(colorMode string) []string {
	if colorMode == "never" {
		return []string{"--message-format=json", "--color=never"}
	}
	return []string{"--message-format=json-diagnostic-rendered-ansi", "--color=always"}
}

// newCargoCommand wraps one cargo subcommand. Flag parsing is disabled so
// every argument after the subcommand reaches cargo untouched.
func newCargoCommand(opts *rootOptions, sub cargoSubcommand) *cobra.Command {
	return &cobra.Command{
		Use:                sub.name + " [cargo options]",
		Aliases:            sub.aliases,
		Short:              sub.short,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv := buildInvocation(sub, args, opts.cfg.Cargo.Color)
			for _, w := range inv.warnings {
				printWarning(opts.stderr, w)
			}
			if inv.help {
				return opts.newSession().cargoHelp(cmd.Context(), inv)
			}
			if opts.cfg.Watch.Enabled {
				return opts.newSession().watch(cmd.Context(), inv)
			}
			return exitCodeError(opts.newSession().run(cmd.Context(), inv))
		},
	}
}
