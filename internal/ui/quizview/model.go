// Package quizview is the terminal front end for a quiz section.
package quizview

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"restlab/internal/quiz"
)

// Model renders and drives a quiz section using Bubble Tea.
type Model struct {
	ctx      context.Context
	section  *quiz.Section
	keys     keyMap
	help     help.Model
	bar      progress.Model
	styles   styles
	noColor  bool
	question int
	choice   int
	notice   string
	quitting bool
}

// Options configures the quiz model.
type Options struct {
	NoColor bool
}

// NewModel constructs a model for section; ctx bounds store calls.
func NewModel(ctx context.Context, section *quiz.Section, opts Options) Model {
	barOpts := []progress.Option{progress.WithoutPercentage(), progress.WithWidth(40)}
	if opts.NoColor {
		barOpts = append(barOpts, progress.WithFillCharacters('#', '.'), progress.WithColorProfile(termenv.Ascii))
	} else {
		barOpts = append(barOpts, progress.WithSolidFill("42"))
	}
	m := Model{
		ctx:     ctx,
		section: section,
		keys:    defaultKeyMap(),
		help:    newHelp(opts.NoColor),
		bar:     progress.New(barOpts...),
		styles:  newStyles(opts.NoColor),
		noColor: opts.NoColor,
	}
	m.question = firstUnanswered(section.View())
	m.choice = cursorFor(section.View(), m.question)
	m.syncKeys()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = typed.Width
		m.bar.Width = max(min(typed.Width-20, 60), 10)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.syncKeys()
	m.notice = ""
	view := m.section.View()
	total := len(view.Questions)

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.choice > 0 {
			m.choice--
		}
	case key.Matches(msg, m.keys.Down):
		if total > 0 && m.choice < len(view.Questions[m.question].Choices)-1 {
			m.choice++
		}
	case key.Matches(msg, m.keys.Prev):
		if m.question > 0 {
			m.question--
			m.choice = cursorFor(view, m.question)
		}
	case key.Matches(msg, m.keys.Next):
		if m.question < total-1 {
			m.question++
			m.choice = cursorFor(view, m.question)
		}
	case key.Matches(msg, m.keys.Select):
		if err := m.section.Select(m.ctx, m.question, m.choice); err != nil {
			m.notice = err.Error()
			break
		}
		if m.question < total-1 {
			m.question++
			m.choice = cursorFor(m.section.View(), m.question)
		}
	case key.Matches(msg, m.keys.Submit):
		if err := m.section.Submit(m.ctx); err != nil {
			m.notice = err.Error()
			break
		}
		m.question = 0
		m.choice = cursorFor(m.section.View(), 0)
	case key.Matches(msg, m.keys.Reset):
		if err := m.section.Reset(m.ctx); err != nil {
			m.notice = err.Error()
			break
		}
		m.question, m.choice = 0, 0
	}
	m.syncKeys()
	return m, nil
}

// View renders the quiz screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render(m.section.View())
}

// Section returns the driven section.
func (m Model) Section() *quiz.Section {
	return m.section
}

func (m *Model) syncKeys() {
	m.keys.syncEnabled(m.section.CanSelect(), m.section.CanSubmit(), m.section.CanReset())
}

func firstUnanswered(view quiz.View) int {
	for i, q := range view.Questions {
		if !q.Answered {
			return i
		}
	}
	return 0
}

func cursorFor(view quiz.View, question int) int {
	if question < 0 || question >= len(view.Questions) {
		return 0
	}
	if selected := view.Questions[question].Selected; selected >= 0 {
		return selected
	}
	return 0
}
