package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	warningLabel = color.New(color.FgYellow, color.Bold)
)

// printError writes a user-facing error line
func printError(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s: %s\n", errorLabel.Sprint("error"), msg)
}

// printWarning writes a user-facing warning line
func printWarning(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s: %s\n", warningLabel.Sprint("warning"), msg)
}

// applyColorMode configures every colour library for the chosen mode.
// auto leaves detection to each library.
func applyColorMode(mode string) {
	switch mode {
	case "never":
		color.NoColor = true
		lipgloss.SetColorProfile(termenv.Ascii)
	case "always":
		color.NoColor = false
	}
}
