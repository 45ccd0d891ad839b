package diagnostic

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/yildizm/burden/internal/logger"
)

// Policy selects which compiler messages become diagnostics
type Policy string

const (
	// PolicyCoded keeps messages carrying a diagnostic code and stops
	// reading at build-finished.
	PolicyCoded Policy = "coded"
	// PolicyRendered keeps every message with rendered text and reads
	// until the stream ends.
	PolicyRendered Policy = "rendered"
)

// DefaultGraceDelay lets cargo flush trailing output after build-finished
const DefaultGraceDelay = 100 * time.Millisecond

// ParsePolicy validates a policy name
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyCoded, PolicyRendered:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("invalid policy: %s (must be one of: coded, rendered)", s)
	}
}

// Option configures a Collector
type Option func(*Collector)

func WithPolicy(p Policy) Option {
	return func(c *Collector) { c.policy = p }
}

func WithGraceDelay(d time.Duration) Option {
	return func(c *Collector) { c.graceDelay = d }
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Collector) { c.log = l }
}

// Collector reads cargo's JSON message stream into a Buffer
type Collector struct {
	reader     *bufio.Reader
	policy     Policy
	graceDelay time.Duration
	log        *logger.Logger

	passthrough bytes.Buffer
	finished    bool
	succeeded   bool
	skipped     int
	lines       int
}

// NewCollector creates a collector over r, using the coded policy by default
func NewCollector(r io.Reader, opts ...Option) *Collector {
	c := &Collector{
		reader:     bufio.NewReader(r),
		policy:     PolicyCoded,
		graceDelay: DefaultGraceDelay,
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect reads messages until the policy's stop condition and returns
// the diagnostics in arrival order.
func (c *Collector) Collect(ctx context.Context) (*Buffer, error) {
	buf := &Buffer{}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line, readErr := c.reader.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("failed to read message stream: %w", readErr)
		}

		if len(line) > 0 {
			c.lines++
			if stop := c.handleLine(buf, line, c.lines); stop {
				c.log.Debug("build finished, stopping collection", logger.F("diagnostics", buf.Len()))
				if err := c.wait(ctx); err != nil {
					return nil, err
				}
				return buf, nil
			}
		}

		if errors.Is(readErr, io.EOF) {
			c.log.Debug("message stream ended",
				logger.F("diagnostics", buf.Len()),
				logger.F("skipped", c.skipped))
			return buf, nil
		}
	}
}

// handleLine applies the selection policy to one line and reports
// whether collection should stop.
func (c *Collector) handleLine(buf *Buffer, line []byte, lineNo int) bool {
	msg, isJSON, err := decodeMessage(line)
	if !isJSON || err != nil || !isCargoReason(msg.Reason) {
		// the program's own output may look like JSON
		if c.policy == PolicyRendered {
			c.passthrough.Write(line)
		} else if err != nil {
			c.skipped++
			c.log.Debug("skipping malformed message", logger.F("line", lineNo), logger.Err(err))
		}
		return false
	}

	switch msg.Reason {
	case ReasonCompilerMessage:
		if d, ok := c.selectMessage(msg.Message); ok {
			buf.add(d)
		}
	case ReasonBuildFinished:
		c.finished = true
		c.succeeded = msg.Success != nil && *msg.Success
		return c.policy == PolicyCoded
	}
	return false
}

func (c *Collector) selectMessage(m *compilerMessage) (Diagnostic, bool) {
	rendered := m.rendered()
	if rendered == "" {
		return Diagnostic{}, false
	}
	if c.policy == PolicyCoded && m.code() == "" {
		return Diagnostic{}, false
	}
	return Diagnostic{
		Rendered: rendered,
		Code:     m.code(),
		Level:    Level(m.Level),
	}, true
}

func (c *Collector) wait(ctx context.Context) error {
	if c.graceDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(c.graceDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Remaining returns the unread part of the stream, including anything
// already buffered by the collector.
func (c *Collector) Remaining() io.Reader {
	return c.reader
}

// Passthrough returns the lines that were not cargo messages, seen while
// reading to the end of the stream under the rendered policy.
func (c *Collector) Passthrough() []byte {
	return c.passthrough.Bytes()
}

// Finished reports whether a build-finished message was seen
func (c *Collector) Finished() bool {
	return c.finished
}

// BuildSucceeded reports the success flag of the build-finished message
func (c *Collector) BuildSucceeded() bool {
	return c.succeeded
}

// Lines returns how many stream lines were read
func (c *Collector) Lines() int {
	return c.lines
}

// Skipped returns how many malformed messages were ignored. Under the
// rendered policy they are passed through instead.
func (c *Collector) Skipped() int {
	return c.skipped
}
