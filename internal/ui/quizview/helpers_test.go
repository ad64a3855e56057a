package quizview

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"restlab/internal/progress"
	"restlab/internal/question"
	"restlab/internal/quiz"
	"restlab/internal/testutil"
)

// testSet has answer key [1, 0].
func testSet() question.Set {
	return question.Set{
		Version:        1,
		Title:          "HTTP basics",
		PersistenceKey: "quiz-view-test",
		Questions: []question.Question{
			{Prompt: "Which method reads?", Choices: []string{"POST", "GET", "DELETE"}, CorrectChoice: 1, Explanation: "GET reads a resource."},
			{Prompt: "Which code means created?", Choices: []string{"201", "404"}, CorrectChoice: 0},
		},
	}
}

func openSection(t *testing.T) (context.Context, *quiz.Section) {
	t.Helper()
	ctx := testutil.Context(t, 2*time.Second)
	section, err := quiz.Open(ctx, testSet(), progress.NewRecords(progress.NewMemory()))
	if err != nil {
		t.Fatalf("open section: %v", err)
	}
	return ctx, section
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		typed, ok := next.(Model)
		if !ok {
			t.Fatalf("unexpected model type %T", next)
		}
		m = typed
	}
	return m
}
