//go:build cucumber

package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cucumber/godog"

	"restlab/internal/ui/quizview"
)

// TestQuizUIModeScenarios runs the quiz front end selection scenarios.
func TestQuizUIModeScenarios(t *testing.T) {
	featurePath := filepath.Join("..", "..", "spec", "features", "quiz-ui-mode.feature")
	suite := godog.TestSuite{
		Name: "quiz-ui-mode",
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			InitializeQuizUIModeScenario(ctx, t)
		},
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{featurePath},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeQuizUIModeScenario wires steps for quiz UI mode scenarios.
func InitializeQuizUIModeScenario(ctx *godog.ScenarioContext, t *testing.T) {
	state := &quizUIScenarioState{t: t}
	origTerminal, origLive, origInput := isTerminal, runLive, quizInput
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		isTerminal = func(io.Writer) bool { return state.isTTY }
		runLive = func(_ context.Context, model tea.Model, _ io.Writer) error {
			state.model = model
			return nil
		}
		quizInput = strings.NewReader("quit\n")
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		isTerminal, runLive, quizInput = origTerminal, origLive, origInput
		return ctx, nil
	})

	ctx.Step(`^a TTY stdout$`, state.givenTTY)
	ctx.Step(`^stdout is not a TTY$`, state.givenNonTTY)
	ctx.Step(`^I run "restlab ([^"]+)"$`, state.whenIRun)
	ctx.Step(`^the live UI is shown$`, state.thenLiveUIShown)
	ctx.Step(`^the UI shows question (\d+) of (\d+)$`, state.thenUIShowsQuestion)
	ctx.Step(`^the output uses plain command text$`, state.thenPlainOutput)
	ctx.Step(`^a fallback warning is printed$`, state.thenFallbackWarning)
}

type quizUIScenarioState struct {
	t          *testing.T
	isTTY      bool
	configPath string
	model      tea.Model
	code       int
	stdout     bytes.Buffer
	stderr     bytes.Buffer
}

// reset clears scenario state and writes a fresh project.
func (s *quizUIScenarioState) reset() {
	s.isTTY = false
	_, s.configPath = writeProject(s.t, baseConfig)
	s.model = nil
	s.code = -1
	s.stdout.Reset()
	s.stderr.Reset()
}

func (s *quizUIScenarioState) givenTTY() error {
	s.isTTY = true
	return nil
}

func (s *quizUIScenarioState) givenNonTTY() error {
	s.isTTY = false
	return nil
}

// whenIRun runs the command line with the scenario config injected.
func (s *quizUIScenarioState) whenIRun(line string) error {
	fields := strings.Fields(line)
	args := append([]string{fields[0], "--config", s.configPath}, fields[1:]...)
	s.code = Run(args, &s.stdout, &s.stderr)
	if s.code != ExitOK {
		return fmt.Errorf("exit %d: %s", s.code, s.stderr.String())
	}
	return nil
}

func (s *quizUIScenarioState) thenLiveUIShown() error {
	if s.model == nil {
		return fmt.Errorf("expected live UI to run")
	}
	return nil
}

func (s *quizUIScenarioState) thenUIShowsQuestion(n, total int) error {
	model, ok := s.model.(quizview.Model)
	if !ok {
		return fmt.Errorf("unexpected model %T", s.model)
	}
	want := fmt.Sprintf("Question %d of %d", n, total)
	if !strings.Contains(model.View(), want) {
		return fmt.Errorf("expected %q in view", want)
	}
	return nil
}

func (s *quizUIScenarioState) thenPlainOutput() error {
	if s.model != nil {
		return fmt.Errorf("expected plain output, live UI ran")
	}
	if !strings.Contains(s.stdout.String(), quizview.PlainHelp) {
		return fmt.Errorf("expected plain command help in %q", s.stdout.String())
	}
	return nil
}

func (s *quizUIScenarioState) thenFallbackWarning() error {
	if !strings.Contains(s.stderr.String(), "falling back to plain output") {
		return fmt.Errorf("expected fallback warning, got %q", s.stderr.String())
	}
	return nil
}

