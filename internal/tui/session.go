package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// Greeting is printed when a session starts.
const Greeting = "Welcome to the assistant bot!"

// Prompt is printed before each line read in plain mode.
const Prompt = "Enter a command: "

// Session reads commands from the user until one asks to exit.
type Session interface {
	Run(ctx context.Context, handle HandleFunc) error
}

// Verify at compile time that both sessions implement Session.
var (
	_ Session = (*PlainSession)(nil)
	_ Session = (*TUISession)(nil)
)

// SessionOptions configures session creation.
type SessionOptions struct {
	In         io.Reader // Input source (default: os.Stdin).
	Out        io.Writer // Output destination (default: os.Stdout).
	ForcePlain bool      // Force line mode even if both ends are a TTY.
}

// NewSession returns a TUI session when input and output are terminals, or a
// line-oriented session otherwise. ForcePlain overrides TTY detection.
func NewSession(opts SessionOptions) Session {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	if opts.ForcePlain || !isTTY(opts.In) || !isTTY(opts.Out) {
		return &PlainSession{in: opts.In, out: opts.Out}
	}
	return &TUISession{in: opts.In, out: opts.Out}
}

// isTTY reports whether v is a file connected to a terminal.
func isTTY(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainSession prompts and reads one command per line.
type PlainSession struct {
	in  io.Reader
	out io.Writer
}

// NewPlainSession creates a line-oriented session over in and out.
func NewPlainSession(in io.Reader, out io.Writer) *PlainSession {
	return &PlainSession{in: in, out: out}
}

// Run prints the greeting, then prompts and handles lines until a reply asks
// to exit, input ends, or ctx is cancelled. End of input is not an error.
func (s *PlainSession) Run(ctx context.Context, handle HandleFunc) error {
	_, _ = fmt.Fprintln(s.out, Greeting)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(s.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- sc.Err()
	}()

	for {
		_, _ = fmt.Fprint(s.out, Prompt)
		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintln(s.out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				_, _ = fmt.Fprintln(s.out)
				if err := <-errc; err != nil {
					return fmt.Errorf("tui: reading input: %w", err)
				}
				return nil
			}
			reply := handle(line)
			if reply.Text != "" {
				_, _ = fmt.Fprintln(s.out, reply.Text)
			}
			if reply.Exit {
				return nil
			}
		}
	}
}

// TUISession runs the session as a Bubble Tea program.
// Falls back to PlainSession if the program fails to start.
type TUISession struct {
	in  io.Reader
	out io.Writer
}

// Run starts the Bubble Tea program and blocks until it quits.
func (s *TUISession) Run(ctx context.Context, handle HandleFunc) error {
	p := tea.NewProgram(NewModel(handle),
		tea.WithContext(ctx),
		tea.WithInput(s.in),
		tea.WithOutput(s.out),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		// Nothing was handled if the program never produced a model.
		if m, ok := final.(Model); ok && len(m.transcript) > 0 {
			return fmt.Errorf("tui: %w", err)
		}
		return NewPlainSession(s.in, s.out).Run(ctx, handle)
	}
	if m, ok := final.(Model); ok && len(m.transcript) > 0 {
		last := m.transcript[len(m.transcript)-1].reply
		if last.Exit && last.Text != "" {
			_, _ = fmt.Fprintln(s.out, last.Text)
		}
	}
	return nil
}
