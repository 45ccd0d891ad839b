package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/burden/internal/diagnostic"
	"golang.org/x/term"
)

// Options configure an interactive pager session
type Options struct {
	// Input defaults to stdin, or the controlling terminal when stdin
	// is redirected
	Input io.Reader
	// Output defaults to stdout
	Output    io.Writer
	AltScreen bool
	Theme     Theme
	// Size is used until the terminal reports its own
	Size Size
}

// Model is the bubbletea model driving the pager
type Model struct {
	buf      *diagnostic.Buffer
	state    State
	size     Size
	keys     keyMap
	styles   *Styles
	clear    bool
	quitting bool
}

// NewModel creates a pager model positioned on the first diagnostic
func NewModel(buf *diagnostic.Buffer, theme Theme, size Size) *Model {
	if size.Height == 0 {
		size.Height = DefaultHeight
	}
	return &Model{
		buf:    buf,
		size:   size,
		keys:   defaultKeyMap(),
		styles: NewStyles(theme),
	}
}

// State returns the current navigation state
func (m *Model) State() State {
	return m.state
}

// Init clears the screen unless the alt screen already gives a blank one
func (m *Model) Init() tea.Cmd {
	if m.clear {
		return tea.ClearScreen
	}
	return nil
}

// Update handles resize and key events
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = Size{Width: msg.Width, Height: msg.Height}
	case tea.KeyMsg:
		action := m.keys.actionFor(msg)
		if action == ActionQuit {
			m.quitting = true
			return m, tea.Quit
		}
		m.state = Navigate(m.state, action, m.buf.Len())
	}
	return m, nil
}

// View renders the current frame
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return RenderFrame(m.state, m.buf, m.size, m.styles)
}

// Run pages through buf until the user exits or input ends. The
// bubbletea program owns raw mode and cursor visibility for the whole
// call and restores both on every exit path, panics included. An empty
// buffer returns immediately without touching the terminal.
func Run(ctx context.Context, buf *diagnostic.Buffer, opts Options) (State, error) {
	if buf.IsEmpty() {
		return State{}, nil
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}
	size := opts.Size
	if size.Height == 0 {
		size = terminalSize(output)
	}

	model := NewModel(buf, opts.Theme, size)
	model.clear = !opts.AltScreen

	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(output),
	}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	var input *eofReader
	if opts.Input != nil {
		if f, ok := opts.Input.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			programOpts = append(programOpts, tea.WithInput(f))
		} else {
			input = &eofReader{r: opts.Input}
			programOpts = append(programOpts, tea.WithInput(input))
		}
	}

	p := tea.NewProgram(model, programOpts...)
	if input != nil {
		input.onEOF = p.Quit
	}

	final, err := p.Run()
	state := model.State()
	if m, ok := final.(*Model); ok {
		state = m.State()
	}
	if err != nil {
		return state, runError(ctx, err)
	}
	return state, nil
}

// runError maps a program error to a cancellation when the pager was
// stopped by ctx or by a SIGINT it caught before our own handler did.
func runError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, tea.ErrInterrupted):
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return context.Canceled
	case errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil:
		return ctx.Err()
	default:
		return fmt.Errorf("pager failed: %w", err)
	}
}

func terminalSize(w io.Writer) Size {
	if f, ok := w.(*os.File); ok {
		if width, height, err := term.GetSize(int(f.Fd())); err == nil {
			return Size{Width: width, Height: height}
		}
	}
	return Size{Height: DefaultHeight}
}

// eofReader quits the program once a non-terminal input is exhausted
type eofReader struct {
	r     io.Reader
	once  sync.Once
	onEOF func()
}

func (e *eofReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if errors.Is(err, io.EOF) && e.onEOF != nil {
		e.once.Do(e.onEOF)
	}
	return n, err
}
