package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/yildizm/burden/internal/config"
	"github.com/yildizm/burden/internal/diagnostic"
	"github.com/yildizm/burden/internal/formatter"
	"github.com/yildizm/burden/internal/logger"
	"github.com/yildizm/burden/internal/monitor"
	"github.com/yildizm/burden/internal/ui"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// session runs cargo invocations against one effective configuration
type session struct {
	cfg     *config.Config
	log     *logger.Logger
	tracker *monitor.Tracker
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func (o *rootOptions) newSession() *session {
	return &session{
		cfg:     o.cfg,
		log:     o.log.WithComponent("session"),
		tracker: monitor.New(),
		stdin:   o.stdin,
		stdout:  o.stdout,
		stderr:  o.stderr,
	}
}

// cargoHelp prints cargo's own help for the subcommand
func (s *session) cargoHelp(ctx context.Context, inv invocation) error {
	// #nosec G204 - the binary comes from the user's own configuration
	cmd := exec.CommandContext(ctx, s.cfg.Cargo.Binary, inv.args...)
	cmd.Dir = s.cfg.Cargo.WorkingDir
	out, err := cmd.Output()
	if _, werr := s.stdout.Write(out); werr != nil {
		return werr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitErr.ExitCode()}
	}
	if err != nil {
		return fmt.Errorf("failed to run %s: %w", s.cfg.Cargo.Binary, err)
	}
	return nil
}

// run executes one invocation: spawn cargo, collect its diagnostics,
// page or print them, forward what remains of its output and wait for
// it. Failures on our side report exit status 1.
func (s *session) run(ctx context.Context, inv invocation) (int, error) {
	policy, err := diagnostic.ParsePolicy(s.cfg.Pager.Policy)
	if err != nil {
		return 1, err
	}

	log := s.log.With(logger.F("subcommand", inv.subcommand))
	log.Debug("starting cargo",
		logger.F("binary", s.cfg.Cargo.Binary),
		logger.F("args", strings.Join(inv.args, " ")))

	// #nosec G204 - the binary comes from the user's own configuration
	cmd := exec.CommandContext(ctx, s.cfg.Cargo.Binary, inv.args...)
	cmd.Dir = s.cfg.Cargo.WorkingDir
	cmd.Stderr = s.stderr
	if f, ok := s.stdin.(*os.File); ok {
		cmd.Stdin = f
	}

	var stdout io.ReadCloser
	err = s.tracker.TrackOperationWithError(monitor.OperationSpawn, func() error {
		var err error
		if stdout, err = cmd.StdoutPipe(); err != nil {
			return fmt.Errorf("failed to create stdout pipe: %w", err)
		}
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("failed to start %s: %w", s.cfg.Cargo.Binary, err)
		}
		return nil
	})
	if err != nil {
		return 1, err
	}

	collector := diagnostic.NewCollector(stdout,
		diagnostic.WithPolicy(policy),
		diagnostic.WithGraceDelay(s.cfg.Pager.GraceDelay),
		diagnostic.WithLogger(log.WithComponent("collector")),
	)
	var buf *diagnostic.Buffer
	err = s.tracker.TrackOperationWithError(monitor.OperationCollect, func() error {
		var err error
		buf, err = collector.Collect(ctx)
		return err
	})
	if err != nil {
		s.abort(cmd)
		return 1, fmt.Errorf("failed to collect diagnostics: %w", err)
	}
	log.Debug("collection complete",
		logger.F("diagnostics", buf.Len()),
		logger.F("skipped", collector.Skipped()),
		logger.F("build_finished", collector.Finished()))

	err = s.tracker.TrackOperationWithError(monitor.OperationPage, func() error {
		return s.present(ctx, buf)
	})
	if err != nil {
		s.abort(cmd)
		return 1, err
	}

	err = s.tracker.TrackOperationWithError(monitor.OperationDrain, func() error {
		return s.forward(ctx, collector, inv.passthrough, func() { s.stop(cmd, stdout) })
	})
	if err != nil {
		s.abort(cmd)
		return 1, err
	}

	var code int
	err = s.tracker.TrackOperationWithError(monitor.OperationWait, func() error {
		var err error
		code, err = waitExitCode(cmd)
		return err
	})
	if err != nil {
		return 1, err
	}
	if err := ctx.Err(); err != nil {
		return 1, err
	}
	s.tracker.RecordRun(buf.Len(), collector.Lines())
	log.Debug("cargo exited", logger.F("code", code))
	s.logTimings(log)

	if s.cfg.Output.Summary {
		if err := s.writeSummary(buf, collector); err != nil {
			return 1, err
		}
	}

	return code, nil
}

// present shows the collected diagnostics. An empty buffer shows nothing.
func (s *session) present(ctx context.Context, buf *diagnostic.Buffer) error {
	if buf.IsEmpty() {
		return nil
	}
	if !s.interactive() {
		return printDiagnostics(s.stdout, buf)
	}

	theme, err := ui.ThemeByName(s.cfg.Pager.Theme)
	if err != nil {
		return err
	}
	state, err := ui.Run(ctx, buf, ui.Options{
		Input:     s.pagerInput(),
		Output:    s.stdout,
		AltScreen: s.cfg.Pager.AltScreen,
		Theme:     theme,
	})
	if err != nil {
		return err
	}
	s.log.Debug("pager closed", logger.F("index", state.Index), logger.F("scroll", state.Scroll))
	return nil
}

// interactive reports whether the pager can own the terminal. Keys are
// read from the controlling terminal when stdin is redirected.
func (s *session) interactive() bool {
	if s.cfg.Output.NoPager {
		return false
	}
	return isTerminal(s.stdout)
}

// pagerInput is stdin when it is a terminal. Otherwise nil lets the
// pager open the controlling terminal itself.
func (s *session) pagerInput() io.Reader {
	if isTerminal(s.stdin) {
		return s.stdin
	}
	return nil
}

// forward replays buffered passthrough lines and drains the rest of
// cargo's stdout. Only run shows it; everything else is discarded so
// cargo never blocks on a full pipe. When ctx ends first, stop is called
// to end cargo and unblock the drain, since a program started by cargo
// run may still hold the pipe open.
func (s *session) forward(ctx context.Context, collector *diagnostic.Collector, show bool, stop func()) error {
	dst := io.Discard
	if show {
		dst = s.stdout
		if _, err := dst.Write(collector.Passthrough()); err != nil {
			return fmt.Errorf("failed to write program output: %w", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	drained := make(chan struct{})
	g.Go(func() error {
		defer close(drained)
		_, err := io.Copy(dst, collector.Remaining())
		if err != nil && !errors.Is(err, os.ErrClosed) && !errors.Is(err, io.ErrClosedPipe) {
			return fmt.Errorf("failed to forward program output: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-drained:
		case <-gctx.Done():
			s.log.Debug("drain interrupted", logger.Err(gctx.Err()))
			stop()
		}
		return nil
	})
	return g.Wait()
}

func (s *session) writeSummary(buf *diagnostic.Buffer, collector *diagnostic.Collector) error {
	summary := diagnostic.Summarize(buf)
	summary.BuildFinished = collector.Finished()
	summary.BuildSucceeded = collector.BuildSucceeded()

	f, err := formatter.New(s.cfg.Output.Format, s.cfg.Cargo.Color != "never")
	if err != nil {
		return err
	}
	out, err := f.Format(summary)
	if err != nil {
		return fmt.Errorf("failed to format summary: %w", err)
	}
	_, err = s.stderr.Write(out)
	return err
}

// logTimings reports the session counters and every phase's timings at
// debug level
func (s *session) logTimings(log *logger.Logger) {
	if !log.IsVerbose() {
		return
	}
	log.Debug("phase timings (last/min/avg/max)", s.timingFields()...)
}

func (s *session) timingFields() []logger.Field {
	var fields []logger.Field
	for _, c := range s.tracker.Counters() {
		fields = append(fields, logger.F(c.Name(), c.Get()))
	}
	for _, op := range s.tracker.Snapshot() {
		fields = append(fields, logger.F(string(op.Operation),
			fmt.Sprintf("%s/%s/%s/%s", op.LastTime, op.MinTime, op.AvgTime, op.MaxTime)))
	}
	return fields
}

// stop kills cargo and closes its stdout so pending reads return
func (s *session) stop(cmd *exec.Cmd, stdout io.Closer) {
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		s.log.Warn("failed to stop cargo", logger.Err(err))
	}
	if err := stdout.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		s.log.Warn("failed to close cargo output", logger.Err(err))
	}
}

// abort stops cargo after a failure on our side
func (s *session) abort(cmd *exec.Cmd) {
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		s.log.Warn("failed to stop cargo", logger.Err(err))
	}
	_ = cmd.Wait()
}

// waitExitCode waits for cmd and maps its status to an exit code
func waitExitCode(cmd *exec.Cmd) (int, error) {
	err := cmd.Wait()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		return 1, nil
	}
	return 1, fmt.Errorf("failed to wait for cargo: %w", err)
}

// printDiagnostics writes every diagnostic followed by a blank line
func printDiagnostics(w io.Writer, buf *diagnostic.Buffer) error {
	for _, d := range buf.Diagnostics() {
		if _, err := fmt.Fprintf(w, "%s\n\n", strings.TrimRight(d.Rendered, "\n")); err != nil {
			return fmt.Errorf("failed to write diagnostics: %w", err)
		}
	}
	return nil
}

var isTerminal = func(v interface{}) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
