package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level orders log severities
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// Field is a key-value pair appended to a log line
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Err builds an error Field
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}

// Logger writes component-scoped lines to stderr.
// Debug and Info are dropped unless the verbose check passes.
type Logger struct {
	component string
	verbose   func() bool
	out       *output
	fields    []Field
}

type output struct {
	mu sync.Mutex
	w  io.Writer
}

// New creates a logger for component; verbose may be nil
func New(component string, verbose func() bool) *Logger {
	return &Logger{
		component: component,
		verbose:   verbose,
		out:       &output{w: os.Stderr},
	}
}

// Discard returns a logger that writes nothing
func Discard() *Logger {
	l := New("discard", nil)
	l.out.w = io.Discard
	return l
}

// SetOutput redirects this logger and every logger derived from it
func (l *Logger) SetOutput(w io.Writer) {
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	l.out.w = w
}

// WithComponent returns a logger sharing output and verbosity under another name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component: component,
		verbose:   l.verbose,
		out:       l.out,
		fields:    l.fields,
	}
}

// With returns a logger that appends fields to every line
func (l *Logger) With(fields ...Field) *Logger {
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &Logger{
		component: l.component,
		verbose:   l.verbose,
		out:       l.out,
		fields:    merged,
	}
}

// IsVerbose reports whether debug output is enabled
func (l *Logger) IsVerbose() bool {
	return l.verbose != nil && l.verbose()
}

func (l *Logger) Debug(msg string, fields ...Field) {
	if l.IsVerbose() {
		l.write(LevelDebug, msg, fields)
	}
}

func (l *Logger) Info(msg string, fields ...Field) {
	if l.IsVerbose() {
		l.write(LevelInfo, msg, fields)
	}
}

func (l *Logger) Warn(msg string, fields ...Field) {
	l.write(LevelWarn, msg, fields)
}

func (l *Logger) Error(msg string, fields ...Field) {
	l.write(LevelError, msg, fields)
}

func (l *Logger) write(level Level, msg string, fields []Field) {
	component := l.component
	if component == "" {
		component = "main"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s [%s] %s", time.Now().Format("15:04:05.000"), level, component, msg)

	all := append(append([]Field{}, l.fields...), fields...)
	if len(all) > 0 {
		parts := make([]string, 0, len(all))
		for _, f := range all {
			parts = append(parts, fmt.Sprintf("%s=%v", f.Key, f.Value))
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(parts, " "))
	}
	b.WriteByte('\n')

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	// nothing sensible to do when the log sink itself fails
	_, _ = io.WriteString(l.out.w, b.String())
}
