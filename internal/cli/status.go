package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"restlab/internal/catalog"
	"restlab/internal/quiz"
	"restlab/internal/ui/quizview"
)

// runStatus builds the handler for the status command.
func runStatus(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := newFlagSet(cmd, stderr)
		configPath := flags.String("config", "", "Path to config file")
		if code := parseFlags(cmd, flags, args, stdout, stderr); code >= 0 {
			return code
		}
		if flags.NArg() > 1 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args()[1:], " "))
			return ExitUsage
		}

		ctx := context.Background()
		sess, err := openSession(*configPath, stderr, false)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		defer sess.Close()
		cat, err := sess.loadCatalog()
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load quizzes: %v\n", err)
			return ExitError
		}
		records, closeStore, err := sess.openRecords(ctx)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitError
		}
		defer closeStore()

		if flags.NArg() == 1 {
			topic, err := cat.Lookup(flags.Arg(0))
			if err != nil {
				fmt.Fprintln(stderr, err)
				return ExitError
			}
			section, err := quiz.Open(ctx, topic.Quiz, records, quiz.WithLogger(sess.logger))
			if err != nil {
				fmt.Fprintln(stderr, err)
				return ExitError
			}
			fmt.Fprint(stdout, quizview.RenderPlain(section.View(), true))
			return ExitOK
		}
		return writeStatusTable(ctx, stdout, stderr, cat, records)
	}
}

func writeStatusTable(ctx context.Context, stdout, stderr io.Writer, cat *catalog.Catalog, store quiz.Store) int {
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TOPIC\tPHASE\tANSWERED\tSCORE")
	for _, topic := range cat.Topics() {
		section, err := quiz.Open(ctx, topic.Quiz, store)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitError
		}
		view := section.View()
		score := "-"
		if view.Outcome != nil {
			score = fmt.Sprintf("%d/%d (%s)", view.Outcome.Score, view.Outcome.Total, view.Outcome.Status)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\n", topic.ID, view.Phase, view.Answered, view.Total, score)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(stderr, "Write failed: %v\n", err)
		return ExitError
	}
	return ExitOK
}

// runReset builds the handler for the reset command. Unlike the in-quiz
// reset it clears a record in any phase.
func runReset(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := newFlagSet(cmd, stderr)
		configPath := flags.String("config", "", "Path to config file")
		all := flags.Bool("all", false, "Clear every quiz")
		if code := parseFlags(cmd, flags, args, stdout, stderr); code >= 0 {
			return code
		}
		if *all == (flags.NArg() == 1) || flags.NArg() > 1 {
			fmt.Fprintln(stderr, "Expected exactly one <topic> or --all")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		ctx := context.Background()
		sess, err := openSession(*configPath, stderr, false)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		defer sess.Close()
		cat, err := sess.loadCatalog()
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load quizzes: %v\n", err)
			return ExitError
		}
		topics := cat.Topics()
		if !*all {
			topic, err := cat.Lookup(flags.Arg(0))
			if err != nil {
				fmt.Fprintln(stderr, err)
				return ExitError
			}
			topics = []catalog.Topic{topic}
		}
		records, closeStore, err := sess.openRecords(ctx)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitError
		}
		defer closeStore()

		for _, topic := range topics {
			key := topic.Quiz.PersistenceKey
			if err := records.Clear(ctx, key); err != nil {
				fmt.Fprintf(stderr, "Reset failed for %s: %v\n", key, err)
				return ExitError
			}
			sess.logger.Info("progress cleared", zap.String("quiz", key))
			fmt.Fprintf(stdout, "Cleared %s\n", key)
		}
		return ExitOK
	}
}
