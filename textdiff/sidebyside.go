package textdiff

import (
	"fmt"
	"strings"

	"znkr.io/fdiff/diff"
)

// RowKind classifies a side-by-side row.
type RowKind int

const (
	RowMatch   RowKind = iota // Same line on both sides
	RowDelete                 // Line only on the left side
	RowInsert                 // Line only on the right side
	RowReplace                // Deleted line paired with an inserted line
)

// Row is one line pair of a side-by-side diff. XLine and YLine are 1-based
// line numbers; 0 marks the side that is blank filler.
type Row struct {
	Kind         RowKind
	XLine, YLine int
	XText, YText string
}

// Rows produces the row model of a side-by-side diff. A Delete directly
// followed by an Insert pairs positionally: the i-th deleted line shares a row
// with the i-th inserted line until the shorter side runs out, the remainder
// pairs with blank filler.
func Rows(x, y []string, s diff.Script) ([]Row, error) {
	if err := s.Validate(len(x), len(y)); err != nil {
		return nil, fmt.Errorf("invalid edit script: %v", err)
	}

	var rows []Row
	edits := s.Edits
	for i := 0; i < len(edits); i++ {
		e := edits[i]
		switch e.Op {
		case diff.Match:
			for k := range e.X1 - e.X0 {
				rows = append(rows, Row{RowMatch, e.X0 + k + 1, e.Y0 + k + 1, x[e.X0+k], y[e.Y0+k]})
			}
		case diff.Delete:
			if i+1 < len(edits) && edits[i+1].Op == diff.Insert {
				ins := edits[i+1]
				i++
				nd, ni := e.X1-e.X0, ins.Y1-ins.Y0
				for k := range max(nd, ni) {
					switch {
					case k < nd && k < ni:
						rows = append(rows, Row{RowReplace, e.X0 + k + 1, ins.Y0 + k + 1, x[e.X0+k], y[ins.Y0+k]})
					case k < nd:
						rows = append(rows, Row{RowDelete, e.X0 + k + 1, 0, x[e.X0+k], ""})
					default:
						rows = append(rows, Row{RowInsert, 0, ins.Y0 + k + 1, "", y[ins.Y0+k]})
					}
				}
				continue
			}
			for k := range e.X1 - e.X0 {
				rows = append(rows, Row{RowDelete, e.X0 + k + 1, 0, x[e.X0+k], ""})
			}
		case diff.Insert:
			for k := range e.Y1 - e.Y0 {
				rows = append(rows, Row{RowInsert, 0, e.Y0 + k + 1, "", y[e.Y0+k]})
			}
		}
	}
	return rows, nil
}

// Option configures the side-by-side renderer.
type Option func(*options)

type options struct {
	width int
}

// Width sets the column width of the side-by-side output. The default is 40.
func Width(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.width = n
		}
	}
}

// SideBySide renders the full listing of x and y as two columns separated by
// " | ". Both columns are padded to the configured width; lines longer than
// the column are never truncated.
func SideBySide(x, y []string, s diff.Script, opts ...Option) (string, error) {
	o := options{width: 40}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	rows, err := Rows(x, y, s)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&sb, "%-*s | %-*s\n", o.width, r.XText, o.width, r.YText)
	}
	return sb.String(), nil
}
