package quizview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"restlab/internal/quiz"
)

func (m Model) render(view quiz.View) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(view.Title))
	b.WriteString("\n\n")
	b.WriteString(m.renderSummary(view))
	b.WriteString("\n")
	b.WriteString(m.renderStrip(view))
	b.WriteString("\n\n")
	if len(view.Questions) > 0 {
		b.WriteString(m.renderQuestion(view, view.Questions[m.question]))
	}
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderSummary(view quiz.View) string {
	if view.Outcome != nil {
		o := view.Outcome
		style := m.styles.Warning
		if o.Status == quiz.StatusSuccess {
			style = m.styles.Success
		}
		return style.Render(fmt.Sprintf("%d/%d correct (%d%%) %s", o.Score, o.Total, o.Percent, o.Message)) + "\n"
	}
	line := m.bar.ViewAs(float64(view.Progress.Percent)/100) +
		fmt.Sprintf(" %d/%d answered", view.Answered, view.Total)
	if view.Progress.Prompt != "" {
		line += "\n" + m.styles.Muted.Render(view.Progress.Prompt)
	}
	return line + "\n"
}

// renderStrip shows one marker per question; the current one is bracketed.
func (m Model) renderStrip(view quiz.View) string {
	cells := make([]string, 0, len(view.Questions))
	for i, q := range view.Questions {
		label := fmt.Sprintf("%d", q.Number)
		style := m.styles.Muted
		switch {
		case q.Grade != nil && q.Grade.Correct:
			label += "✓"
			style = m.styles.Correct
		case q.Grade != nil:
			label += "✗"
			style = m.styles.Incorrect
		case q.Answered:
			label += "•"
			style = m.styles.Selected
		}
		if i == m.question {
			label = "[" + label + "]"
		} else {
			label = " " + label + " "
		}
		cells = append(cells, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) renderQuestion(view quiz.View, q quiz.QuestionView) string {
	var b strings.Builder
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("Question %d of %d", q.Number, view.Total)))
	b.WriteString("\n")
	b.WriteString(m.styles.Prompt.Render(q.Prompt))
	b.WriteString("\n")
	for i, choice := range q.Choices {
		cursor := "  "
		if i == m.choice && view.CanSelect {
			cursor = m.styles.Cursor.Render("› ")
		}
		mark := "( )"
		line := choice
		if i == q.Selected {
			mark = "(•)"
			line = m.styles.Selected.Render(choice)
		}
		b.WriteString(fmt.Sprintf("%s%s %c) %s\n", cursor, mark, 'A'+i, line))
	}
	if q.Grade != nil {
		style := m.styles.Incorrect
		if q.Grade.Correct {
			style = m.styles.Correct
		}
		b.WriteString(style.Render(q.Grade.Badge))
		b.WriteString("\n")
		if q.Grade.Explanation != "" {
			b.WriteString(m.styles.Muted.Render("Explanation: " + q.Grade.Explanation))
			b.WriteString("\n")
		}
	}
	return b.String()
}
