package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

// runStats builds the handler for the stats command.
func runStats(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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

		ctx := context.Background()
		sess, err := openSession(*configPath, stderr, false)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		defer sess.Close()
		t, err := sess.openTally(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open tally: %v\n", err)
			return ExitError
		}
		if t == nil {
			fmt.Fprintln(stdout, "Tally is disabled")
			return ExitOK
		}
		defer t.Close()

		counts, err := t.Counts(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to read tally: %v\n", err)
			return ExitError
		}
		if len(counts) == 0 {
			fmt.Fprintln(stdout, "No graded attempts yet")
			return ExitOK
		}
		tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "QUIZ\tATTEMPTS\tPASSED\tFAILED\tBEST\tLAST")
		for _, c := range counts {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d/%d\t%s\n",
				c.Key, c.Attempts, c.Passed, c.Failed(), c.BestScore, c.Total, c.LastAt.Local().Format(time.DateTime))
		}
		if err := tw.Flush(); err != nil {
			fmt.Fprintf(stderr, "Write failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
