package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// chrome is the number of lines used by the title, input and help bar.
const chrome = 3

// Reply is the outcome of one submitted line.
type Reply struct {
	Text   string
	Failed bool
	Exit   bool
}

// HandleFunc executes one line of input.
type HandleFunc func(line string) Reply

// exchange is one submitted line and its reply.
type exchange struct {
	line  string
	reply Reply
}

// Model is the Bubble Tea model for the interactive session.
type Model struct {
	handle     HandleFunc
	input      textinput.Model
	viewport   viewport.Model
	help       help.Model
	keys       chatKeys
	transcript []exchange
	width      int
	height     int
	done       bool
}

// NewModel creates a Model that sends submitted lines to handle.
func NewModel(handle HandleFunc) Model {
	ti := textinput.New()
	ti.Prompt = "Enter a command: "
	ti.Placeholder = "help"
	ti.Focus()

	return Model{
		handle:   handle,
		input:    ti,
		viewport: viewport.New(0, 0),
		help:     help.New(),
		keys:     ChatKeyMap(),
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 0)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chrome, 1)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.done = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		line := m.input.Value()
		m.input.Reset()
		if strings.TrimSpace(line) == "" {
			return m, nil
		}
		reply := m.handle(line)
		m.transcript = append(m.transcript, exchange{line: line, reply: reply})
		m.refresh()
		if reply.Exit {
			m.done = true
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	var b strings.Builder
	for i, ex := range m.transcript {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(commandStyle.Render("> " + ex.line))
		if ex.reply.Text != "" {
			b.WriteString("\n")
			b.WriteString(renderReply(ex.reply))
		}
	}
	return b.String()
}

// View renders the title, transcript, input line and help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.done {
		return ""
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Welcome to the assistant bot!"),
		m.viewport.View(),
		m.input.View(),
		m.help.View(m.keys),
	)
}
