package quizview

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// styles groups the lipgloss styles used by the view.
type styles struct {
	Title     lipgloss.Style
	Prompt    lipgloss.Style
	Cursor    lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
	Correct   lipgloss.Style
	Incorrect lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{
			Title: plain.Bold(true), Prompt: plain, Cursor: plain, Selected: plain,
			Muted: plain, Correct: plain, Incorrect: plain, Success: plain, Warning: plain, Error: plain,
		}
	}
	return styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		Prompt:    lipgloss.NewStyle().Bold(true),
		Cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Selected:  lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Correct:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Incorrect: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Success:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Warning:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

func newHelp(noColor bool) help.Model {
	h := help.New()
	if noColor {
		plain := lipgloss.NewStyle()
		h.Styles = help.Styles{
			Ellipsis: plain, ShortKey: plain, ShortDesc: plain, ShortSeparator: plain,
			FullKey: plain, FullDesc: plain, FullSeparator: plain,
		}
	}
	return h
}
