package monitor

import (
	"time"
)

// Tracker times the phases of cargo sessions. One tracker spans every
// run of a watch loop.
type Tracker struct {
	timers      map[OperationType]*Timer
	runs        *Counter
	diagnostics *Counter
	lines       *Counter
}

// New creates a tracker with a timer for every session phase
func New() *Tracker {
	t := &Tracker{
		timers:      make(map[OperationType]*Timer, len(Operations)),
		runs:        NewCounter("runs"),
		diagnostics: NewCounter("diagnostics"),
		lines:       NewCounter("lines"),
	}
	for _, op := range Operations {
		t.timers[op] = NewTimer(string(op))
	}
	return t
}

// TrackOperationWithError tracks an operation that may return an error
func (t *Tracker) TrackOperationWithError(operation OperationType, fn func() error) error {
	start := time.Now()
	err := fn()
	if timer, ok := t.timers[operation]; ok {
		timer.Record(time.Since(start), err != nil)
	}
	return err
}

// RecordRun counts one finished run and what it collected
func (t *Tracker) RecordRun(diagnostics, lines int) {
	t.runs.Inc()
	t.diagnostics.Add(int64(diagnostics))
	t.lines.Add(int64(lines))
}

// Runs returns how many runs were recorded
func (t *Tracker) Runs() int64 {
	return t.runs.Get()
}

// Counters returns the run, diagnostic and line counters in that order
func (t *Tracker) Counters() []*Counter {
	return []*Counter{t.runs, t.diagnostics, t.lines}
}

// Snapshot returns the metrics of every phase in execution order
func (t *Tracker) Snapshot() []OperationMetrics {
	ops := make([]OperationMetrics, 0, len(Operations))
	for _, op := range Operations {
		ops = append(ops, t.timers[op].metrics())
	}
	return ops
}
