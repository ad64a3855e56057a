package cli

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// uiMode is the value of the quiz --ui flag.
type uiMode string

const (
	uiAuto  uiMode = "auto"
	uiLive  uiMode = "live"
	uiPlain uiMode = "plain"
)

const liveFallbackWarning = "Live UI requested but stdout is not a TTY; falling back to plain output."

// uiModeDecision captures whether to use the live UI.
type uiModeDecision struct {
	useLive bool
	warning string
}

// isTerminal reports whether stdout is a TTY; tests replace it.
var isTerminal = func(stdout io.Writer) bool {
	fder, ok := stdout.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(fder.Fd()))
}

// resolveUIMode picks the quiz front end. Auto follows the terminal; an
// explicit live request on a non-TTY degrades to plain with a warning.
func resolveUIMode(mode string, stdout io.Writer) (uiModeDecision, error) {
	m := uiMode(strings.ToLower(strings.TrimSpace(mode)))
	if m == "" {
		m = uiAuto
	}
	switch m {
	case uiPlain:
		return uiModeDecision{}, nil
	case uiAuto, uiLive:
		tty := isTerminal(stdout)
		if !tty && m == uiLive {
			return uiModeDecision{warning: liveFallbackWarning}, nil
		}
		return uiModeDecision{useLive: tty}, nil
	}
	return uiModeDecision{}, fmt.Errorf("invalid ui mode %q (expected %s|%s|%s)", mode, uiAuto, uiLive, uiPlain)
}
