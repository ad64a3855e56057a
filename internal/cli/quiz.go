package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"restlab/internal/quiz"
	"restlab/internal/ui/quizview"
)

// quizInput is the plain-mode command source; tests replace it.
var quizInput io.Reader = os.Stdin

// runLive runs the full-screen program; tests replace it.
var runLive = func(ctx context.Context, model tea.Model, stdout io.Writer) error {
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithOutput(stdout),
		tea.WithAltScreen(),
	)
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// runQuiz builds the handler for the quiz command.
func runQuiz(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := newFlagSet(cmd, stderr)
		configPath := flags.String("config", "", "Path to config file")
		uiMode := flags.String("ui", "auto", "UI mode: auto|live|plain")
		noColor := flags.Bool("no-color", false, "Disable colors")
		if code := parseFlags(cmd, flags, args, stdout, stderr); code >= 0 {
			return code
		}
		if flags.NArg() != 1 {
			fmt.Fprintln(stderr, "Expected exactly one <topic>")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		decision, err := resolveUIMode(*uiMode, stdout)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sess, err := openSession(*configPath, stderr, false)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		defer sess.Close()

		section, closeSection, err := openSection(ctx, sess, flags.Arg(0))
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitError
		}
		defer closeSection()

		sess.logger.Info("quiz started", zap.String("quiz", section.Key()), zap.Bool("live", decision.useLive))
		if decision.useLive {
			err = runLive(ctx, quizview.NewModel(ctx, section, quizview.Options{NoColor: *noColor}), stdout)
		} else {
			err = quizview.RunPlain(ctx, section, quizInput, stdout, *noColor)
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(stderr, "Quiz failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

// openSection resolves topic and opens its section on the configured store,
// recording graded attempts in the tally when it is enabled. An unavailable
// store degrades to memory and a tally that cannot be opened is skipped.
func openSection(ctx context.Context, sess *session, topic string) (*quiz.Section, func(), error) {
	cat, err := sess.loadCatalog()
	if err != nil {
		return nil, nil, fmt.Errorf("load quizzes: %w", err)
	}
	found, err := cat.Lookup(topic)
	if err != nil {
		return nil, nil, err
	}
	records, closeStore := sess.openRecordsOrMemory(ctx)
	closers := []func() error{closeStore}
	opts := []quiz.Option{quiz.WithLogger(sess.logger)}
	t, err := sess.openTally(ctx)
	if err != nil {
		sess.logger.Warn("tally unavailable", zap.Error(err))
	} else if t != nil {
		opts = append(opts, quiz.WithRecorder(t))
		closers = append(closers, t.Close)
	}
	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				sess.logger.Warn("close failed", zap.Error(err))
			}
		}
	}
	section, err := quiz.Open(ctx, found.Quiz, records, opts...)
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	return section, closeAll, nil
}
