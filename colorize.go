package main

import (
	"os"
	"strings"
)

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiCyan  = "\033[36m"
)

// colorize adds ANSI colors to unified diff output based on each line's
// prefix. mode is auto, always, or never; auto colorizes only when stdout is
// a terminal.
func colorize(s, mode string) string {
	switch mode {
	case "always":
	case "auto":
		if fi, err := os.Stdout.Stat(); err != nil || fi.Mode()&os.ModeCharDevice == 0 {
			return s
		}
	default:
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for line := range strings.Lines(s) {
		l, terminated := strings.CutSuffix(line, "\n")
		switch {
		case strings.HasPrefix(l, "@@"):
			sb.WriteString(ansiCyan + l + ansiReset)
		case strings.HasPrefix(l, "-"):
			sb.WriteString(ansiRed + l + ansiReset)
		case strings.HasPrefix(l, "+"):
			sb.WriteString(ansiGreen + l + ansiReset)
		default:
			sb.WriteString(l)
		}
		if terminated {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
