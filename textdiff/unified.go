package textdiff

import (
	"fmt"
	"strings"

	"znkr.io/fdiff/diff"
)

// Unified renders s in unified format with context matching lines around
// every change. Hunks start with an "@@ -<start>,<len> +<start>,<len> @@"
// header with 1-based start lines and are separated by a blank line where
// interior context was elided. Identical inputs render as the empty string.
func Unified(x, y []string, s diff.Script, context int) (string, error) {
	if err := s.Validate(len(x), len(y)); err != nil {
		return "", fmt.Errorf("invalid edit script: %v", err)
	}

	var sb strings.Builder
	for i, h := range diff.Hunks(s, context) {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.X0+1, h.X1-h.X0, h.Y0+1, h.Y1-h.Y0)
		for _, e := range h.Edits {
			switch e.Op {
			case diff.Match:
				for i := e.X0; i < e.X1; i++ {
					sb.WriteByte(' ')
					sb.WriteString(x[i])
					sb.WriteByte('\n')
				}
			case diff.Delete:
				for i := e.X0; i < e.X1; i++ {
					sb.WriteByte('-')
					sb.WriteString(x[i])
					sb.WriteByte('\n')
				}
			case diff.Insert:
				for j := e.Y0; j < e.Y1; j++ {
					sb.WriteByte('+')
					sb.WriteString(y[j])
					sb.WriteByte('\n')
				}
			}
		}
	}
	return sb.String(), nil
}
