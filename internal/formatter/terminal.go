package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/burden/internal/diagnostic"
	"github.com/yildizm/go-termfmt"
)

// maxCodes caps the code breakdown in the text summary
const maxCodes = 10

// terminalFormatter formats a summary as a tree for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = color
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(summary *diagnostic.Summary) ([]byte, error) {
	var b strings.Builder

	f.writeStatistics(&b, summary)
	if len(summary.Codes) > 0 {
		f.writeCodes(&b, summary.Codes)
	}

	return []byte(b.String()), nil
}

// writeStatistics writes totals and the per-level breakdown
func (f *terminalFormatter) writeStatistics(b *strings.Builder, summary *diagnostic.Summary) {
	b.WriteString(termfmt.GetEmoji("statistics", f.opts) + " Diagnostics\n")

	items := []termfmt.TreeItem{
		{Label: "Total", Value: fmt.Sprintf("%d", summary.Total)},
	}
	for _, level := range sortedCounts(summary.Levels) {
		items = append(items, termfmt.TreeItem{
			Label: f.levelLabel(level.Name),
			Value: fmt.Sprintf("%d", level.Count),
		})
	}
	items = append(items, termfmt.TreeItem{Label: "Build", Value: buildStatus(summary), Last: true})

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeCodes writes the most frequent diagnostic codes
func (f *terminalFormatter) writeCodes(b *strings.Builder, codes map[string]int) {
	b.WriteString(termfmt.GetEmoji("pattern", f.opts) + " Top Codes\n")

	counts := sortedCounts(codes)
	if len(counts) > maxCodes {
		counts = counts[:maxCodes]
	}

	items := make([]termfmt.TreeItem, 0, len(counts))
	for i, c := range counts {
		items = append(items, termfmt.TreeItem{
			Label: c.Name,
			Value: fmt.Sprintf("%d", c.Count),
			Last:  i == len(counts)-1,
		})
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}

func (f *terminalFormatter) levelLabel(level string) string {
	switch diagnostic.Level(level) {
	case diagnostic.LevelError, diagnostic.LevelICE:
		return termfmt.GetEmoji("error", f.opts) + " " + level
	case diagnostic.LevelWarning:
		return termfmt.GetEmoji("warning", f.opts) + " " + level
	default:
		return termfmt.GetEmoji("info", f.opts) + " " + level
	}
}

func buildStatus(summary *diagnostic.Summary) string {
	switch {
	case !summary.BuildFinished:
		return "unfinished"
	case summary.BuildSucceeded:
		return "succeeded"
	default:
		return "failed"
	}
}
