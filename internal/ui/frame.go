package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/x/ansi"
	"github.com/yildizm/burden/internal/diagnostic"
)

const (
	// MinHeight keeps the layout from collapsing on tiny terminals
	MinHeight = 5
	// ReservedRows are the header, the blank below it, the blank above
	// the legend and the legend itself.
	ReservedRows = 4
	// DefaultHeight is used until the terminal reports its size
	DefaultHeight = 24
)

// Size is the terminal size in cells
type Size struct {
	Width  int
	Height int
}

// ViewportHeight returns how many content rows fit in a frame
func (s Size) ViewportHeight() int {
	return max(s.Height, MinHeight) - ReservedRows
}

// RenderFrame draws a complete screen for state. It is a pure function
// of its inputs; the same state always yields the same frame.
func RenderFrame(s State, buf *diagnostic.Buffer, size Size, styles *Styles) string {
	rows := make([]string, 0, max(size.Height, MinHeight))

	rows = append(rows, renderHeader(s, buf, styles), "")
	for _, line := range viewport(buf.At(s.Index).Lines(), s.Scroll, size.ViewportHeight()) {
		if size.Width > 0 {
			line = ansi.Truncate(line, size.Width, "")
		}
		rows = append(rows, line)
	}
	rows = append(rows, "", renderLegend(size.Width, styles))

	return strings.Join(rows, "\n")
}

func renderHeader(s State, buf *diagnostic.Buffer, styles *Styles) string {
	return fmt.Sprintf("%s %s %s %s",
		styles.Label.Render("Displaying Message"),
		styles.Number.Render(fmt.Sprintf("%d", s.Index+1)),
		styles.Label.Render("of"),
		styles.Number.Render(fmt.Sprintf("%d", buf.Len())),
	)
}

func renderLegend(width int, styles *Styles) string {
	h := help.New()
	h.Width = width
	h.ShortSeparator = "   "
	h.Styles.ShortKey = styles.Key
	h.Styles.ShortDesc = styles.Action
	h.Styles.ShortSeparator = styles.Separator
	h.Styles.Ellipsis = styles.Separator
	return h.View(defaultKeyMap())
}

// viewport returns exactly height rows of lines starting at scroll,
// padding with empty rows past the end of the content.
func viewport(lines []string, scroll, height int) []string {
	rows := make([]string, height)
	for i := range rows {
		if n := scroll + i; n < len(lines) {
			rows[i] = lines[n]
		}
	}
	return rows
}
