// Package tui implements the interactive chat interface.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lectern-labs/lectern-cli/internal/core/ports/driving"
)

var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	sourceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// answerMsg carries a completed answer back into the update loop.
type answerMsg struct {
	result *driving.AnswerResult
	err    error
}

// Model is the Bubble Tea model for the chat session.
type Model struct {
	ctx       context.Context
	assistant driving.AssistantService

	input    textinput.Model
	viewport viewport.Model

	transcript []string
	sessionID  string
	waiting    bool
	ready      bool
}

// New creates a chat model over the assistant service.
func New(ctx context.Context, assistant driving.AssistantService) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about your courses"
	ti.Focus()
	ti.CharLimit = 0

	return Model{
		ctx:       ctx,
		assistant: assistant,
		input:     ti,
		viewport:  viewport.New(0, 0),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, frameHeight := inputBoxStyle.GetFrameSize()
		height := msg.Height - frameHeight - 4
		if height < 3 {
			height = 3
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = height
		m.viewport.SetContent(strings.Join(m.transcript, "\n"))
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.String() == "esc" {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.waiting {
			query := strings.TrimSpace(m.input.Value())
			if query == "" {
				return m, nil
			}
			m.input.Reset()
			m.waiting = true
			m.appendLine(userStyle.Render("You: ") + query)
			return m, m.ask(query)
		}

	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.appendLine(errorStyle.Render("Error: " + msg.err.Error()))
			return m, nil
		}
		m.sessionID = msg.result.SessionID
		m.appendLine(assistantStyle.Render("Lectern: ") + msg.result.Answer)
		for _, source := range msg.result.Sources {
			line := "  · " + source.Text
			if source.Link != "" {
				line += " (" + source.Link + ")"
			}
			m.appendLine(sourceStyle.Render(line))
		}
		m.appendLine("")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	status := "Enter to send, Esc to quit"
	if m.waiting {
		status = "Thinking..."
	}
	return m.viewport.View() + "\n" +
		inputBoxStyle.Render(m.input.View()) + "\n" +
		statusStyle.Render(status)
}

// ask issues the query off the update loop.
func (m Model) ask(query string) tea.Cmd {
	ctx := m.ctx
	assistant := m.assistant
	sessionID := m.sessionID
	return func() tea.Msg {
		result, err := assistant.Answer(ctx, query, sessionID)
		return answerMsg{result: result, err: err}
	}
}

func (m *Model) appendLine(line string) {
	m.transcript = append(m.transcript, line)
	m.viewport.SetContent(strings.Join(m.transcript, "\n"))
	m.viewport.GotoBottom()
}
