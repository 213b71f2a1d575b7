// ============================================================================
// KeplerKV - Key-Value Store with Query Language
// ============================================================================
//
// Package:     tui
// Description: Full-screen query console built on bubbletea
// Author:      Mike Stoffels
// Created:     2026-10-12
// License:     MIT
// ============================================================================

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/keplerkv/foundation/kql/executor"
	"github.com/msto63/keplerkv/internal/console"
)

// Engine executes queries. *kql.Engine implements it.
type Engine interface {
	HandleQuery(ctx context.Context, query string) error
	Running() bool
}

// Options configures a Model
type Options struct {
	Context context.Context
	Engine  Engine
	Bridge  *Bridge
	Prompt  string
	NoColor bool
}

// Model is the main TUI model. One query runs at a time on a tea.Cmd
// worker; the store is never touched from Update.
type Model struct {
	// State
	width  int
	height int
	ready  bool
	busy   bool

	// Pending rename confirmation
	confirm *confirmRequest

	// Components
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	// Transcript
	lines   []string
	printer *console.Printer

	// Input history
	history    []string
	historyPos int

	ctx    context.Context
	engine Engine
	bridge *Bridge
}

// NewModel creates a new TUI model. The engine must have been built with
// opts.Bridge as its output and confirmer.
func NewModel(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Prompt == "" {
		opts.Prompt = "> "
	}

	ti := textinput.New()
	ti.Placeholder = `\SET _key value`
	ti.Prompt = opts.Prompt
	ti.CharLimit = 64 * 1024
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	printer := console.New(console.Options{Color: !opts.NoColor})

	return Model{
		input:   ti,
		spinner: sp,
		printer: printer,
		lines:   []string{printer.Render(executor.Message{Kind: executor.MessageBanner, Text: console.WelcomeText})},
		ctx:     opts.Context,
		engine:  opts.Engine,
		bridge:  opts.Bridge,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.bridge.wait(),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirm != nil {
			return m.answer(msg)
		}

		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			if m.busy {
				return m, nil
			}
			query := strings.TrimSpace(m.input.Value())
			if query == "" {
				return m, nil
			}
			m.input.Reset()
			m.history = append(m.history, query)
			m.historyPos = len(m.history)
			m.appendLine(QueryStyle.Render(m.input.Prompt) + query)
			m.busy = true
			return m, tea.Batch(m.runQuery(query), m.spinner.Tick)

		case "up":
			if m.historyPos > 0 {
				m.historyPos--
				m.input.SetValue(m.history[m.historyPos])
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if m.historyPos < len(m.history)-1 {
				m.historyPos++
				m.input.SetValue(m.history[m.historyPos])
				m.input.CursorEnd()
			} else {
				m.historyPos = len(m.history)
				m.input.Reset()
			}
			return m, nil

		case "ctrl+l":
			m.lines = nil
			m.refresh()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(msg.Width, max(1, msg.Height-6))
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = max(1, msg.Height-6)
		}
		m.input.Width = max(10, msg.Width-6)
		m.refresh()

	case confirmRequestMsg:
		m.appendMessages(m.bridge.drain())
		req := confirmRequest(msg)
		m.confirm = &req
		m.appendLine(ConfirmStyle.Render(req.prompt))
		return m, nil

	case queryDoneMsg:
		m.busy = false
		m.appendMessages(msg.messages)
		if msg.err != nil {
			for _, line := range strings.Split(msg.err.Error(), "\n") {
				m.appendLine(RenderError(line))
			}
		}
		if !m.engine.Running() {
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	// Update components
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// answer resolves a pending confirmation with y or n
func (m Model) answer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var ok bool
	switch msg.String() {
	case "y", "Y":
		ok = true
	case "n", "N", "enter", "esc":
	case "ctrl+c":
		m.confirm.reply <- false
		m.confirm = nil
		return m, tea.Quit
	default:
		return m, nil
	}

	m.confirm.reply <- ok
	m.confirm = nil
	if ok {
		m.appendLine("y")
	} else {
		m.appendLine("n")
	}
	return m, m.bridge.wait()
}

// runQuery executes query on a worker goroutine
func (m Model) runQuery(query string) tea.Cmd {
	engine, bridge, ctx := m.engine, m.bridge, m.ctx
	return func() tea.Msg {
		err := engine.HandleQuery(ctx, query)
		return queryDoneMsg{messages: bridge.drain(), err: err}
	}
}

func (m *Model) appendMessages(msgs []executor.Message) {
	for _, msg := range msgs {
		if msg.Kind == executor.MessageClear {
			m.lines = nil
			continue
		}
		m.lines = append(m.lines, m.printer.Render(msg))
	}
	m.refresh()
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.refresh()
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

// Transcript returns the rendered output lines
func (m Model) Transcript() []string {
	return append([]string(nil), m.lines...)
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var s strings.Builder

	// Header
	s.WriteString(TitleStyle.Render("KeplerKV"))
	s.WriteString(" ")
	s.WriteString(SubtitleStyle.Render("query console"))
	s.WriteString("\n")

	// Transcript
	s.WriteString(m.viewport.View())
	s.WriteString("\n")

	// Status line
	switch {
	case m.confirm != nil:
		s.WriteString(ConfirmStyle.Render("Overwrite? y/n"))
	case m.busy:
		s.WriteString(m.spinner.View())
		s.WriteString(" running...")
	}
	s.WriteString("\n")

	// Input and footer
	s.WriteString(FocusedInputStyle.Render(m.input.View()))
	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

func (m Model) renderFooter() string {
	help := `Enter: run • Up/Down: history • Ctrl+L: clear • \q or Ctrl+C: quit`
	return StatusBarStyle.Width(m.width).Render(help)
}
