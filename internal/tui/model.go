// Package tui hosts the shortcode engine in a one-line terminal input with a
// live preview of the rendered markup.
package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/glyphserve/pkg/mrkdwn"
	"github.com/bastiangx/glyphserve/pkg/suggest"
	"github.com/bastiangx/glyphserve/pkg/symbols"
)

const prompt = "> "

// sessionKeys are the keys routed to the engine while a session is open.
var sessionKeys = map[string]suggest.Key{
	"left":  suggest.KeyLeft,
	"right": suggest.KeyRight,
	"up":    suggest.KeyUp,
	"down":  suggest.KeyDown,
	"enter": suggest.KeyEnter,
	"esc":   suggest.KeyEscape,
}

// Options configures a Model.
type Options struct {
	Table       symbols.Lookuper
	Renderer    *mrkdwn.Renderer
	GridColumns int
	Engine      []suggest.Option
}

// Model is the bubbletea model of the demo input.
type Model struct {
	input    textinput.Model
	engine   *suggest.Engine
	renderer *mrkdwn.Renderer
	updates  updates
	columns  int

	snap   suggest.Snapshot
	sent   []string
	status string
	width  int
}

// New creates a focused Model. Close it when the program exits.
func New(opts Options) *Model {
	if opts.Renderer == nil {
		opts.Renderer = mrkdwn.NewRenderer(mrkdwn.Options{})
	}
	if opts.GridColumns < 1 {
		opts.GridColumns = suggest.DefaultGridColumns
	}

	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = "Write a message, :shortcodes: welcome"
	ti.CharLimit = 2000
	ti.Focus()

	m := &Model{
		input:    ti,
		renderer: opts.Renderer,
		updates:  newUpdates(),
		columns:  opts.GridColumns,
	}
	engineOpts := append([]suggest.Option{suggest.WithGridColumns(opts.GridColumns)}, opts.Engine...)
	engineOpts = append(engineOpts, suggest.WithUpdateFunc(m.updates.offer))
	m.engine = suggest.NewEngine(opts.Table, engineOpts...)
	return m
}

// Close stops the engine.
func (m *Model) Close() {
	m.engine.Close()
}

// Value returns the current buffer.
func (m *Model) Value() string {
	return m.input.Value()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.updates.wait())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case snapshotMsg:
		// a push only wakes the view; the engine may have moved on since
		m.snap = m.engine.Snapshot()
		return m, m.updates.wait()
	case tea.BlurMsg:
		m.engine.Blur()
		m.snap = m.engine.Snapshot()
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case statusMsg:
		m.status = msg.msg
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+y":
		return m, m.copyHTML()
	}

	if k, ok := sessionKeys[key]; ok && m.snap.Open {
		res := m.engine.HandleKey(suggest.KeyEvent{Key: k})
		if res.Handled {
			m.apply(res)
			return m, nil
		}
	}

	switch key {
	case "enter":
		return m, m.send()
	case "esc":
		return m, tea.Quit
	}

	before, pos := m.input.Value(), m.input.Position()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before || m.input.Position() != pos {
		m.apply(m.engine.HandleChange(suggest.ChangeEvent{
			Text:   m.input.Value(),
			Cursor: m.input.Position(),
		}))
	}
	return m, cmd
}

// apply takes over an engine result, writing a proposed edit into the input.
func (m *Model) apply(res suggest.Result) {
	if res.Edit != nil {
		m.input.SetValue(res.Edit.Text)
		m.input.SetCursor(res.Edit.Cursor)
	}
	m.snap = res.Snapshot
}

// send moves the buffer into the preview history.
func (m *Model) send() tea.Cmd {
	value := m.input.Value()
	if strings.TrimSpace(value) == "" {
		return nil
	}
	m.sent = append(m.sent, value)
	m.input.Reset()
	m.apply(m.engine.HandleChange(suggest.ChangeEvent{}))
	log.Debugf("Sent message %d", len(m.sent))
	return nil
}

func (m *Model) copyHTML() tea.Cmd {
	fragment, _ := m.renderer.Display(m.input.Value())
	return func() tea.Msg {
		if err := clipboard.WriteAll(fragment); err != nil {
			return statusMsg{msg: "Failed to copy: " + err.Error()}
		}
		return statusMsg{msg: fmt.Sprintf("Copied %d bytes of HTML", len(fragment))}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("glyphserve"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.snap.Open {
		b.WriteString(m.popover())
		b.WriteString("\n")
	}

	var preview strings.Builder
	for _, msg := range m.sent {
		preview.WriteString(m.renderer.Render(msg))
		preview.WriteString("\n")
	}
	current, _ := m.renderer.Display(m.input.Value())
	preview.WriteString(current)
	style := previewStyle
	if m.width > 0 {
		style = style.Width(max(m.width-2, 20))
	}
	b.WriteString(style.Render(preview.String()))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("arrows: move • enter: pick/send • esc: close/quit • ctrl+y: copy html • ctrl+c: quit"))
	return b.String()
}

// popover draws the candidate grid under the trigger.
func (m *Model) popover() string {
	var body string
	switch {
	case len(m.snap.Candidates) > 0:
		body = m.grid()
	case m.snap.Pending:
		body = hintStyle.Render("searching…")
	default:
		body = hintStyle.Render("no matches")
	}

	indent := lipgloss.Width(prompt) + m.snap.Anchor.Column
	return lipgloss.NewStyle().MarginLeft(indent).Render(popoverStyle.Render(body))
}

func (m *Model) grid() string {
	var rows []string
	var row []string
	for i, e := range m.snap.Candidates {
		style := cellStyle
		if i == m.snap.Highlighted {
			style = cellSelectedStyle
		}
		row = append(row, style.Render(e.Glyph))
		if len(row) == m.columns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	if sel, ok := m.snap.Selected(); ok {
		rows = append(rows, codeStyle.Render(sel.Code()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Run starts the program and closes the model when it exits.
func Run(m *Model) error {
	defer m.Close()
	p := tea.NewProgram(m, tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
