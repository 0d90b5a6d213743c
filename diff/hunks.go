package diff

import "slices"

// Hunk is a contiguous run of changes together with at most the requested
// number of matching context lines on each side. [X0, X1) and [Y0, Y1) are the
// line ranges the hunk covers in x and y.
type Hunk struct {
	X0, X1 int
	Y0, Y1 int
	Edits  []Edit
}

// Hunks groups the edits of s into hunks with context matching lines around
// every change.
//
// A Match run longer than 2*context lines splits the script: its first
// context lines close the current hunk and its last context lines open the
// next one, the interior is dropped. Shorter Match runs bridge the changes on
// either side into a single hunk. A script without changes yields no hunks;
// a context at least as large as the longest Match run yields exactly one
// hunk spanning the whole script. A negative context is treated as zero.
func Hunks(s Script, context int) []Hunk {
	if context < 0 {
		context = 0
	}
	edits := slices.Clone(s.Edits)
	if len(edits) == 0 {
		return nil
	}

	// A leading Match run contributes only its tail, a trailing one only its
	// head.
	if e := edits[0]; e.Op == Match && e.X1-e.X0 > context {
		edits[0] = Edit{Match, e.X1 - context, e.X1, e.Y1 - context, e.Y1}
	}
	if e := edits[len(edits)-1]; e.Op == Match && e.X1-e.X0 > context {
		edits[len(edits)-1] = Edit{Match, e.X0, e.X0 + context, e.Y0, e.Y0 + context}
	}

	var hunks []Hunk
	var group []Edit
	for _, e := range edits {
		if e.Op == Match && e.X1-e.X0 > 2*context {
			if head := (Edit{Match, e.X0, e.X0 + context, e.Y0, e.Y0 + context}); head.X1 > head.X0 {
				group = append(group, head)
			}
			if changed(group) {
				hunks = append(hunks, newHunk(group))
			}
			group = nil
			e = Edit{Match, e.X1 - context, e.X1, e.Y1 - context, e.Y1}
		}
		if e.X1 > e.X0 || e.Y1 > e.Y0 {
			group = append(group, e)
		}
	}
	if changed(group) {
		hunks = append(hunks, newHunk(group))
	}
	return hunks
}

func changed(group []Edit) bool {
	for _, e := range group {
		if e.Op != Match {
			return true
		}
	}
	return false
}

func newHunk(group []Edit) Hunk {
	first, last := group[0], group[len(group)-1]
	return Hunk{
		X0:    first.X0,
		X1:    last.X1,
		Y0:    first.Y0,
		Y1:    last.Y1,
		Edits: group,
	}
}
