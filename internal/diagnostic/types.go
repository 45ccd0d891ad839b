package diagnostic

import (
	"fmt"
	"strings"
)

// Level is the severity cargo attached to a compiler message
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelNote    Level = "note"
	LevelHelp    Level = "help"
	LevelFailure Level = "failure-note"
	LevelICE     Level = "error: internal compiler error"
)

// String returns the level name, "unknown" when empty
func (l Level) String() string {
	if l == "" {
		return "unknown"
	}
	return string(l)
}

// Diagnostic is one compiler message selected for display.
// Rendered is kept verbatim, ANSI escapes included.
type Diagnostic struct {
	Rendered string
	Code     string
	Level    Level
}

// Lines splits the rendered text into display lines
func (d *Diagnostic) Lines() []string {
	text := strings.TrimSuffix(d.Rendered, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Buffer is the arrival-ordered collection of diagnostics from one run.
// Only the collector appends to it.
type Buffer struct {
	items []Diagnostic
}

// NewBuffer creates a buffer holding a copy of the given diagnostics
func NewBuffer(items ...Diagnostic) *Buffer {
	b := &Buffer{items: make([]Diagnostic, len(items))}
	copy(b.items, items)
	return b
}

// Len returns the number of diagnostics
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// IsEmpty reports whether nothing was collected
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// At returns the diagnostic at index i
func (b *Buffer) At(i int) *Diagnostic {
	if i < 0 || i >= b.Len() {
		panic(fmt.Sprintf("diagnostic: index %d out of range [0, %d)", i, b.Len()))
	}
	return &b.items[i]
}

// Diagnostics returns a copy of the buffered diagnostics
func (b *Buffer) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, b.Len())
	if b != nil {
		copy(out, b.items)
	}
	return out
}

func (b *Buffer) add(d Diagnostic) {
	b.items = append(b.items, d)
}

// Summary aggregates a buffer for reporting
type Summary struct {
	Total          int            `json:"total"`
	Levels         map[string]int `json:"levels"`
	Codes          map[string]int `json:"codes"`
	BuildFinished  bool           `json:"build_finished"`
	BuildSucceeded bool           `json:"build_succeeded"`
}

// Summarize counts diagnostics by level and code
func Summarize(b *Buffer) *Summary {
	s := &Summary{
		Levels: make(map[string]int),
		Codes:  make(map[string]int),
	}
	for i := 0; i < b.Len(); i++ {
		d := b.At(i)
		s.Total++
		s.Levels[d.Level.String()]++
		if d.Code != "" {
			s.Codes[d.Code]++
		}
	}
	return s
}
