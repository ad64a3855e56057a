package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirm asks a yes/no question. An empty answer or end of input takes the
// default; unrecognized answers are asked again until input runs out.
func confirm(in *bufio.Scanner, out io.Writer, label string, defaultYes bool) (bool, error) {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	for {
		fmt.Fprintf(out, "%s %s: ", label, hint)
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return false, err
			}
			fmt.Fprintln(out)
			return defaultYes, nil
		}
		switch strings.ToLower(strings.TrimSpace(in.Text())) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(out, "Please answer yes or no.")
	}
}
