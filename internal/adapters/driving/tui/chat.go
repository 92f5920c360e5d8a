// Package tui provides the interactive chat interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
)

var (
	questionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	sourceStyle   = lipgloss.NewStyle().Faint(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// exchange is one question/answer pair in the transcript.
type exchange struct {
	question string
	answer   string
	sources  []domain.RetrievedChunk
	err      error
}

// answerMsg carries a completed query back into the update loop.
type answerMsg struct {
	result domain.QueryResult
	err    error
}

// ChatModel is the bubbletea model for the interactive chat loop.
type ChatModel struct {
	answerer    driving.Answerer
	topK        int
	maxTokens   int
	showSources bool

	input    textinput.Model
	spinner  spinner.Model
	history  []exchange
	waiting  bool
	quitting bool
}

// NewChatModel creates the chat model.
func NewChatModel(answerer driving.Answerer, topK, maxTokens int, showSources bool) ChatModel {
	input := textinput.New()
	input.Placeholder = "Ask a question..."
	input.Focus()
	input.CharLimit = 500
	input.Width = 72

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return ChatModel{
		answerer:    answerer,
		topK:        topK,
		maxTokens:   maxTokens,
		showSources: showSources,
		input:       input,
		spinner:     sp,
	}
}

// Init implements tea.Model.
func (m ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.input.Reset()
			m.waiting = true
			m.history = append(m.history, exchange{question: question})
			return m, tea.Batch(m.spinner.Tick, m.ask(question))
		}

	case answerMsg:
		m.waiting = false
		last := &m.history[len(m.history)-1]
		if msg.err != nil {
			last.err = msg.err
		} else {
			last.answer = msg.result.Answer
			last.sources = msg.result.Retrieved
		}
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ask runs the query off the update loop.
func (m ChatModel) ask(question string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.answerer.Query(context.Background(), question, m.topK, m.maxTokens)
		return answerMsg{result: result, err: err}
	}
}

// View implements tea.Model.
func (m ChatModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	for _, ex := range m.history {
		b.WriteString(questionStyle.Render("You: "+ex.question) + "\n")
		switch {
		case ex.err != nil:
			b.WriteString(errorStyle.Render("Error: "+ex.err.Error()) + "\n")
		case ex.answer != "":
			b.WriteString(answerStyle.Render(ex.answer) + "\n")
			if m.showSources {
				for i, src := range ex.sources {
					title, _ := src.Metadata["title"].(string)
					if title == "" {
						title = "untitled"
					}
					b.WriteString(sourceStyle.Render(
						fmt.Sprintf("  [%d] %s (relevance %.2f)", i+1, title, src.Relevance())) + "\n")
				}
			}
		}
		b.WriteString("\n")
	}

	if m.waiting {
		b.WriteString(m.spinner.View() + " thinking...\n\n")
	}

	b.WriteString(m.input.View() + "\n")
	b.WriteString(helpStyle.Render("enter: ask · esc: quit") + "\n")
	return b.String()
}

// Run starts the chat program and blocks until the user quits.
func Run(answerer driving.Answerer, topK, maxTokens int, showSources bool) error {
	model := NewChatModel(answerer, topK, maxTokens, showSources)
	_, err := tea.NewProgram(model).Run()
	return err
}
