package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

const (
	defaultWidth         = 100
	defaultHeight        = 30
	inputCharLimit       = 4000
	inputHeightReserved  = 2
	statusHeightReserved = 3
	minContentHeight     = 5
)

var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "240"})
	boldStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "196"})
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "63", Dark: "63"})
)

// SendFunc sends one prompt to the agent and returns its reply
type SendFunc func(ctx context.Context, agentID int64, prompt string) (string, error)

// ChatProgram is the agent test-chat terminal UI
type ChatProgram struct {
	model chatModel
}

// NewChatProgram creates a chat against agent; each prompt is bounded by timeout
func NewChatProgram(agent entity.Agent, send SendFunc, timeout time.Duration) *ChatProgram {
	return &ChatProgram{model: newModel(agent, send, timeout)}
}

// Run starts the program and blocks until the operator quits
func (p *ChatProgram) Run() error {
	_, err := tea.NewProgram(p.model, tea.WithAltScreen()).Run()
	return err
}

type turn struct {
	role    string
	content string
	failed  bool
}

type chatModel struct {
	agent   entity.Agent
	send    SendFunc
	timeout time.Duration

	input   textinput.Model
	view    viewport.Model
	spinner spinner.Model

	turns   []turn
	waiting bool

	width  int
	height int
}

type (
	replyMsg struct{ text string }
	errMsg   struct{ err error }
)

func newModel(agent entity.Agent, send SendFunc, timeout time.Duration) chatModel {
	input := textinput.New()
	input.Placeholder = "Type a message to test the agent..."
	input.Focus()
	input.CharLimit = inputCharLimit
	input.Width = defaultWidth - 3
	input.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return chatModel{
		agent:   agent,
		send:    send,
		timeout: timeout,
		input:   input,
		view:    viewport.New(defaultWidth, defaultHeight),
		spinner: sp,
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if prompt := strings.TrimSpace(m.input.Value()); prompt != "" && !m.waiting {
				m.input.Reset()
				m.turns = append(m.turns, turn{role: "You", content: prompt})
				m.waiting = true
				m.refresh()
				return m, tea.Batch(m.ask(prompt), m.spinner.Tick)
			}
		case tea.KeyUp:
			m.view.LineUp(1)
		case tea.KeyDown:
			m.view.LineDown(1)
		case tea.KeyPgUp:
			m.view.ViewUp()
		case tea.KeyPgDown:
			m.view.ViewDown()
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.view.Width = msg.Width
		m.view.Height = max(msg.Height-inputHeightReserved-statusHeightReserved, minContentHeight)
		m.input.Width = msg.Width - 3
		m.refresh()

	case replyMsg:
		m.waiting = false
		m.turns = append(m.turns, turn{role: m.agent.DisplayName, content: msg.text})
		m.refresh()

	case errMsg:
		m.waiting = false
		m.turns = append(m.turns, turn{role: m.agent.DisplayName, content: msg.err.Error(), failed: true})
		m.refresh()

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.waiting {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m chatModel) ask(prompt string) tea.Cmd {
	agentID, send, timeout := m.agent.ID, m.send, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		reply, err := send(ctx, agentID, prompt)
		if err != nil {
			return errMsg{err: err}
		}
		return replyMsg{text: reply}
	}
}

func (m *chatModel) refresh() {
	var b strings.Builder
	for _, t := range m.turns {
		b.WriteString("\n")
		b.WriteString(boldStyle.Render(t.role))
		b.WriteString("\n")
		if t.failed {
			b.WriteString(errorStyle.Render("Error: " + t.content))
		} else {
			b.WriteString(t.content)
		}
		b.WriteString("\n")
	}
	m.view.SetContent(wrap(b.String(), m.width))
	m.view.GotoBottom()
}

// wrap breaks lines at the terminal width, counting wide runes as two cells
func wrap(text string, width int) string {
	if width <= 10 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if runewidth.StringWidth(line) > width {
			lines[i] = wrapLine(line, width)
		}
	}
	return strings.Join(lines, "\n")
}

func wrapLine(line string, width int) string {
	var out, cur strings.Builder
	w := 0
	for _, r := range line {
		rw := runewidth.RuneWidth(r)
		if w+rw > width && w > 0 {
			out.WriteString(cur.String())
			out.WriteString("\n")
			cur.Reset()
			w = 0
		}
		cur.WriteRune(r)
		w += rw
	}
	out.WriteString(cur.String())
	return out.String()
}

func (m chatModel) View() string {
	status := dimStyle.Render(fmt.Sprintf("Testing %s (%s)", m.agent.DisplayName, m.agent.Model))
	if m.waiting {
		status += " " + m.spinner.View() + dimStyle.Render(" thinking...")
	}

	input := promptStyle.Render("> ") + m.input.View()
	help := dimStyle.Render("Enter send • ↑↓ scroll • Esc quit")
	if m.waiting {
		input = dimStyle.Render("> waiting for reply...")
		help = ""
	}

	return lipgloss.JoinVertical(lipgloss.Left, status, "", m.view.View(), "", input, help)
}
