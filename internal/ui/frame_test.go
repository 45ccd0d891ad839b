package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/yildizm/burden/internal/diagnostic"
)

func numberedDiagnostic(n int) diagnostic.Diagnostic {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	return diagnostic.Diagnostic{Rendered: b.String()}
}

func frameRows(frame string) []string {
	return strings.Split(ansi.Strip(frame), "\n")
}

func TestRenderFrameHeader(t *testing.T) {
	buf := diagnostic.NewBuffer(numberedDiagnostic(1), numberedDiagnostic(1), numberedDiagnostic(1))

	rows := frameRows(RenderFrame(State{Index: 2}, buf, Size{Height: 10}, NewStyles(DefaultTheme)))

	if rows[0] != "Displaying Message 3 of 3" {
		t.Errorf("header = %q", rows[0])
	}
	if rows[1] != "" {
		t.Errorf("expected blank line under header, got %q", rows[1])
	}
}

func TestRenderFrameScrolledViewport(t *testing.T) {
	buf := diagnostic.NewBuffer(numberedDiagnostic(50))
	size := Size{Height: 14}

	rows := frameRows(RenderFrame(State{Scroll: 6}, buf, size, NewStyles(DefaultTheme)))

	if len(rows) != size.Height {
		t.Fatalf("expected %d rows, got %d", size.Height, len(rows))
	}
	if size.ViewportHeight() != 10 {
		t.Fatalf("viewport height = %d, want 10", size.ViewportHeight())
	}
	for i := 0; i < 10; i++ {
		want := fmt.Sprintf("line %d", i+7)
		if rows[2+i] != want {
			t.Errorf("viewport row %d = %q, want %q", i, rows[2+i], want)
		}
	}
	if rows[12] != "" {
		t.Errorf("expected blank line above legend, got %q", rows[12])
	}
	if !strings.Contains(rows[13], "Esc") || !strings.Contains(rows[13], "Last Msg") {
		t.Errorf("legend = %q", rows[13])
	}
}

func TestRenderFramePadsPastContent(t *testing.T) {
	buf := diagnostic.NewBuffer(numberedDiagnostic(3))

	rows := frameRows(RenderFrame(State{Scroll: 100}, buf, Size{Height: 10}, NewStyles(DefaultTheme)))

	if len(rows) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(rows))
	}
	for i := 2; i < 8; i++ {
		if rows[i] != "" {
			t.Errorf("row %d should be blank, got %q", i, rows[i])
		}
	}
}

func TestRenderFrameClampsHeight(t *testing.T) {
	buf := diagnostic.NewBuffer(numberedDiagnostic(10))

	rows := frameRows(RenderFrame(State{}, buf, Size{Height: 2}, NewStyles(DefaultTheme)))

	if len(rows) != MinHeight {
		t.Fatalf("expected %d rows on a tiny terminal, got %d", MinHeight, len(rows))
	}
	if rows[2] != "line 1" {
		t.Errorf("expected one content row, got %q", rows[2])
	}
}

func TestRenderFrameTruncatesWithoutWrapping(t *testing.T) {
	long := strings.Repeat("x", 200)
	buf := diagnostic.NewBuffer(diagnostic.Diagnostic{Rendered: "\x1b[31m" + long + "\x1b[0m\n"})

	frame := RenderFrame(State{}, buf, Size{Width: 40, Height: 8}, NewStyles(DefaultTheme))
	rows := strings.Split(frame, "\n")

	if len(rows) != 8 {
		t.Fatalf("long line must not add rows, got %d", len(rows))
	}
	if w := ansi.StringWidth(rows[2]); w != 40 {
		t.Errorf("content row width = %d, want 40", w)
	}
}

func TestRenderFrameIsIdempotent(t *testing.T) {
	buf := diagnostic.NewBuffer(numberedDiagnostic(30), numberedDiagnostic(5))
	state := State{Index: 1, Scroll: 2}
	size := Size{Width: 80, Height: 20}
	styles := NewStyles(DefaultTheme)

	first := RenderFrame(state, buf, size, styles)
	second := RenderFrame(state, buf, size, styles)

	if first != second {
		t.Error("rendering the same state twice produced different frames")
	}
}

func TestThemeByName(t *testing.T) {
	for _, name := range AvailableThemes() {
		theme, err := ThemeByName(name)
		if err != nil {
			t.Errorf("ThemeByName(%q) error = %v", name, err)
		}
		if theme.Name != name {
			t.Errorf("ThemeByName(%q) returned %q", name, theme.Name)
		}
	}
	if _, err := ThemeByName("neon"); err == nil {
		t.Error("expected error for unknown theme")
	}
}
