package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// runTopics builds the handler for the topics command.
func runTopics(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			return ExitUsage
		}

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

		tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TOPIC\tQUIZ\tQUESTIONS\tTITLE")
		for _, topic := range cat.Topics() {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", topic.ID, topic.Quiz.PersistenceKey, topic.Quiz.Len(), topic.Title)
		}
		if err := tw.Flush(); err != nil {
			fmt.Fprintf(stderr, "Write failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
