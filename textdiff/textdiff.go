// Package textdiff renders line diffs as text.
package textdiff

import "strings"

// Split splits s into lines with the line terminators stripped. "\n", "\r\n",
// and a lone "\r" all terminate a line; a trailing terminator does not produce
// a final empty line.
func Split(s string) []string {
	var lines []string
	for len(s) > 0 {
		i := strings.IndexAny(s, "\r\n")
		if i < 0 {
			lines = append(lines, s)
			break
		}
		line := s[:i]
		if s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n' {
			i++
		}
		lines = append(lines, line)
		s = s[i+1:]
	}
	return lines
}
