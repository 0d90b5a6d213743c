// Package diff computes the difference between two sequences of lines as a
// minimal edit script and groups that script into hunks for display.
package diff

import "fmt"

// Op describes an edit operation.
//
//go:generate go run golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Match  Op = iota // Lines present in both sequences
	Delete           // Lines present only in x
	Insert           // Lines present only in y
)

// Edit describes a single edit of a diff as a pair of half-open ranges
// [X0, X1) into x and [Y0, Y1) into y.
//
//   - For Match, both ranges have the same length and cover the lines that are
//     equal in both sequences.
//   - For Delete, [X0, X1) covers the deleted lines and Y0 == Y1 is the
//     position in y at which the deletion happens.
//   - For Insert, [Y0, Y1) covers the inserted lines and X0 == X1 is the
//     position in x at which the insertion happens.
type Edit struct {
	Op             Op
	X0, X1, Y0, Y1 int
}

// Script is an ordered sequence of edits that transforms x into y.
//
// A well-formed script covers [0, len(x)) with its x-ranges and [0, len(y))
// with its y-ranges, in order and without gaps or overlaps. It contains no
// empty edits, no two adjacent Match edits, and inside every changed region
// the deleted range precedes the inserted range.
type Script struct {
	Edits []Edit
}

// IsIdentity reports whether the script contains no changes.
func (s Script) IsIdentity() bool {
	for _, e := range s.Edits {
		if e.Op != Match {
			return false
		}
	}
	return true
}

// Validate checks the script invariants against sequence lengths nx and ny.
// A non-nil error means the script was not produced by [Align] or was
// corrupted afterwards; callers should treat it as an internal fault.
func (s Script) Validate(nx, ny int) error {
	x, y := 0, 0
	prev := Op(-1)
	for i, e := range s.Edits {
		if e.X0 != x || e.Y0 != y {
			return fmt.Errorf("edit %d: ranges start at (%d, %d), want (%d, %d)", i, e.X0, e.Y0, x, y)
		}
		switch e.Op {
		case Match:
			if e.X1-e.X0 != e.Y1-e.Y0 {
				return fmt.Errorf("edit %d: match ranges differ in length", i)
			}
			if e.X1 <= e.X0 {
				return fmt.Errorf("edit %d: empty match", i)
			}
			if prev == Match {
				return fmt.Errorf("edit %d: adjacent match edits not merged", i)
			}
		case Delete:
			if e.X1 <= e.X0 {
				return fmt.Errorf("edit %d: empty delete", i)
			}
			if e.Y0 != e.Y1 {
				return fmt.Errorf("edit %d: delete with non-empty y-range", i)
			}
			if prev == Delete {
				return fmt.Errorf("edit %d: adjacent delete edits not merged", i)
			}
			if prev == Insert {
				return fmt.Errorf("edit %d: delete after insert breaks canonical order", i)
			}
		case Insert:
			if e.Y1 <= e.Y0 {
				return fmt.Errorf("edit %d: empty insert", i)
			}
			if e.X0 != e.X1 {
				return fmt.Errorf("edit %d: insert with non-empty x-range", i)
			}
			if prev == Insert {
				return fmt.Errorf("edit %d: adjacent insert edits not merged", i)
			}
		default:
			return fmt.Errorf("edit %d: unknown op %v", i, e.Op)
		}
		x, y = e.X1, e.Y1
		prev = e.Op
	}
	if x != nx || y != ny {
		return fmt.Errorf("script covers (%d, %d) lines, want (%d, %d)", x, y, nx, ny)
	}
	return nil
}

// Stats summarizes a script.
type Stats struct {
	Unchanged int // lines present in both sequences
	Added     int // lines present only in y
	Deleted   int // lines present only in x
	Hunks     int // maximal runs of adjacent changes
}

// Stats computes the script's summary in a single pass.
func (s Script) Stats() Stats {
	var st Stats
	inChange := false
	for _, e := range s.Edits {
		switch e.Op {
		case Match:
			st.Unchanged += e.X1 - e.X0
			inChange = false
		case Delete:
			st.Deleted += e.X1 - e.X0
			if !inChange {
				st.Hunks++
			}
			inChange = true
		case Insert:
			st.Added += e.Y1 - e.Y0
			if !inChange {
				st.Hunks++
			}
			inChange = true
		}
	}
	return st
}

// Similarity returns a measure of how similar the two sequences are in
// [0, 1], computed as 2*M/T with M the number of unchanged lines and T the
// total number of lines in both sequences. Two empty sequences are fully
// similar.
func (st Stats) Similarity() float64 {
	t := 2*st.Unchanged + st.Added + st.Deleted
	if t == 0 {
		return 1
	}
	return float64(2*st.Unchanged) / float64(t)
}
