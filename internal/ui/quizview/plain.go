package quizview

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"restlab/internal/quiz"
)

// PlainHelp lists the line commands accepted by RunPlain.
const PlainHelp = "commands: select <question> <choice> | submit | reset | show | help | quit"

// RenderPlain writes every question of view as text, one block per question.
func RenderPlain(view quiz.View, noColor bool) string {
	st := newStyles(noColor)
	var b strings.Builder
	b.WriteString(st.Title.Render(view.Title))
	b.WriteString("\n")
	if view.Outcome != nil {
		o := view.Outcome
		style := st.Warning
		if o.Status == quiz.StatusSuccess {
			style = st.Success
		}
		b.WriteString(style.Render(fmt.Sprintf("Score: %d/%d (%d%%) [%s] %s", o.Score, o.Total, o.Percent, o.Status, o.Message)))
		b.WriteString("\n")
	} else {
		b.WriteString(fmt.Sprintf("Progress: %d%% (%d/%d answered)\n", view.Progress.Percent, view.Answered, view.Total))
		if view.Progress.Prompt != "" {
			b.WriteString(st.Muted.Render(view.Progress.Prompt))
			b.WriteString("\n")
		}
	}
	for _, q := range view.Questions {
		b.WriteString("\n")
		b.WriteString(st.Prompt.Render(fmt.Sprintf("%d. %s", q.Number, q.Prompt)))
		b.WriteString("\n")
		for i, choice := range q.Choices {
			mark := "[ ]"
			if i == q.Selected {
				mark = "[x]"
			}
			b.WriteString(fmt.Sprintf("   %s %d) %s\n", mark, i+1, choice))
		}
		if q.Grade != nil {
			style := st.Incorrect
			if q.Grade.Correct {
				style = st.Correct
			}
			b.WriteString("   ")
			b.WriteString(style.Render(q.Grade.Badge))
			b.WriteString("\n")
			if q.Grade.Explanation != "" {
				b.WriteString("   Explanation: " + q.Grade.Explanation + "\n")
			}
		}
	}
	controls := make([]string, 0, 3)
	if view.CanSelect {
		controls = append(controls, "select")
	}
	if view.CanSubmit {
		controls = append(controls, "submit")
	}
	if view.CanReset {
		controls = append(controls, "reset")
	}
	if len(controls) > 0 {
		b.WriteString("\n")
		b.WriteString(st.Muted.Render("Available: " + strings.Join(controls, ", ")))
		b.WriteString("\n")
	}
	return b.String()
}

// RunPlain drives section from line commands read from in until quit, EOF or
// ctx is cancelled. Question and choice numbers are 1-based.
func RunPlain(ctx context.Context, section *quiz.Section, in io.Reader, out io.Writer, noColor bool) error {
	fmt.Fprint(out, RenderPlain(section.View(), noColor))
	fmt.Fprintln(out, PlainHelp)
	lines, readErr := readLines(ctx, in)
	for {
		fmt.Fprint(out, "> ")
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return <-readErr
			}
			line = l
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch strings.ToLower(fields[0]) {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			fmt.Fprintln(out, PlainHelp)
		case "show":
			fmt.Fprint(out, RenderPlain(section.View(), noColor))
		case "select":
			question, choice, err := parseSelect(fields[1:])
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			if err := section.Select(ctx, question-1, choice-1); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			view := section.View()
			fmt.Fprintf(out, "Question %d: choice %d selected (%d/%d answered)\n", question, choice, view.Answered, view.Total)
		case "submit":
			if err := section.Submit(ctx); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprint(out, RenderPlain(section.View(), noColor))
		case "reset":
			if err := section.Reset(ctx); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprint(out, RenderPlain(section.View(), noColor))
		default:
			fmt.Fprintf(out, "unknown command %q\n%s\n", fields[0], PlainHelp)
		}
	}
}

// readLines scans in on its own goroutine so a blocked read never delays
// cancellation. The read error, nil at EOF, arrives once lines is closed.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

func parseSelect(args []string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, errors.New("usage: select <question> <choice>")
	}
	question, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid question number %q", args[0])
	}
	choice, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid choice number %q", args[1])
	}
	return question, choice, nil
}
