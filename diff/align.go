package diff

// Implementation note: The alignment is an implementation of Myers' diff algorithm. These
// algorithms seem like magic when read in code, at least I wasn't able to find an understandable
// code representation and examples I looked at were the same. They are not magic though, but they
// do require a bit of reading to understand them. The following links for a good explanation for
// this algorithm and working on this code will likely require re-reading how the algorithm works:
//
// https://blog.jcoglan.com/2017/02/12/the-myers-diff-algorithm-part-1/
// https://blog.jcoglan.com/2017/02/15/the-myers-diff-algorithm-part-2/
// https://blog.jcoglan.com/2017/02/17/the-myers-diff-algorithm-part-3/

import (
	"fmt"
	"slices"
)

const debug bool = false

// Align compares x and y line by line and returns a shortest edit script
// transforming x into y.
//
// The result is deterministic: whenever more than one shortest script exists,
// the one that consumes deletions before insertions is chosen, so the same
// inputs always produce the same script. Align is a pure function and safe to
// call concurrently for independent comparisons.
func Align(x, y []string) Script {
	var ops []Op

	// Try to reduce the amount of work necessary by skipping a common prefix
	// and suffix.
	if n := longestCommonPrefix(x, y); n > 0 {
		ops = appendRun(ops, Match, n)
		x = x[n:]
		y = y[n:]
	}
	suffix := longestCommonSuffix(x, y)
	if suffix > 0 {
		x = x[:len(x)-suffix]
		y = y[:len(y)-suffix]
	}

	switch {
	case len(x) == 0 && len(y) == 0:
		// nothing left to do
	case len(x) == 0:
		ops = appendRun(ops, Insert, len(y))
	case len(y) == 0:
		ops = appendRun(ops, Delete, len(x))
	default:
		ops = shortestEditSequence(ops, x, y)
	}
	ops = appendRun(ops, Match, suffix)

	return coalesce(ops)
}

func appendRun(ops []Op, op Op, n int) []Op {
	ops = slices.Grow(ops, n)
	for range n {
		ops = append(ops, op)
	}
	return ops
}

// coalesce folds the per-line ops into range edits. Within every maximal run
// of changes the deleted range is emitted before the inserted range, making
// the script canonical irrespective of the path the backtrace took.
func coalesce(ops []Op) Script {
	var edits []Edit
	x, y := 0, 0
	for i := 0; i < len(ops); {
		if ops[i] == Match {
			j := i
			for j < len(ops) && ops[j] == Match {
				j++
			}
			n := j - i
			edits = append(edits, Edit{Match, x, x + n, y, y + n})
			x += n
			y += n
			i = j
			continue
		}
		var del, ins int
		j := i
		for ; j < len(ops) && ops[j] != Match; j++ {
			if ops[j] == Delete {
				del++
			} else {
				ins++
			}
		}
		if del > 0 {
			edits = append(edits, Edit{Delete, x, x + del, y, y})
		}
		if ins > 0 {
			edits = append(edits, Edit{Insert, x + del, x + del, y, y + ins})
		}
		x += del
		y += ins
		i = j
	}
	return Script{Edits: edits}
}

func longestCommonPrefix(x, y []string) int {
	n := min(len(x), len(y))
	for i := range n {
		if x[i] != y[i] {
			return i
		}
	}
	return n
}

func longestCommonSuffix(x, y []string) int {
	n := min(len(x), len(y))
	if n == 0 {
		return 0
	}
	for i := range n - 1 {
		if x[len(x)-i-1] != y[len(y)-i-1] {
			return i
		}
	}
	return n - 1
}

func shortestEditSequence(ops []Op, x, y []string) []Op {
	if len(x)+len(y) < 0 {
		panic("inputs too large")
	}

	v := computeMyersGraph(x, y)

	// Appends ops in reverse order by backtracking along the edges in the myersGraph and reverses
	// them in place.
	preexisting := len(ops) // Used to reverse the appended ops.
	s := len(x)
	t := len(y)

	for d := v.maxDepth; ; d-- {
		k := s - t
		if debug {
			if max(k, -k)%2 != d%2 {
				panic("invariant violation")
			}
		}

		var prevK int
		switch {
		case d == 0:
			prevK = 0
		case k == -d || (k != d && v.get(d-1, k-1) < v.get(d-1, k+1)):
			prevK = k + 1
		default:
			prevK = k - 1
		}

		prevS := 0
		if d > 0 {
			prevS = v.get(d-1, prevK)
		}
		prevT := prevS - prevK

		for prevS < s && prevT < t {
			ops = append(ops, Match)
			s--
			t--
		}

		if d == 0 {
			break
		}

		if debug {
			if prevS == s && prevT == t {
				panic("invariant violation")
			}
		}
		if prevS == s {
			ops = append(ops, Insert)
		} else {
			if debug {
				if prevT != t {
					panic("invariant violation")
				}
			}
			ops = append(ops, Delete)
		}

		s = prevS
		t = prevT
	}

	slices.Reverse(ops[preexisting:])
	return ops
}

// myersGraph stores the graph that is generated during shortestEditSequence. The graph is stored
// in a flat slice and by storing the full graph, it's not necessary to record a trace at every
// depth iteration.
type myersGraph struct {
	v        []int
	maxDepth int
}

func (g *myersGraph) upgradeMaxDepth(maxDepth int) {
	if maxDepth < g.maxDepth {
		return
	}
	n := (maxDepth + 2) * (maxDepth + 1) / 2
	g.v = slices.Grow(g.v, n)
	g.v = g.v[:n]
	g.maxDepth = maxDepth
}

func (g *myersGraph) get(d, k int) int    { return g.v[g.index(d, k)] }
func (g *myersGraph) set(d, k int, v int) { g.v[g.index(d, k)] = v }

func (g *myersGraph) index(d, k int) int {
	if debug {
		if d < 0 || d > g.maxDepth {
			panic(fmt.Sprintf("d must be in [0, %v] but is %v", g.maxDepth, d))
		}
		if k < -d || k > d {
			panic(fmt.Sprintf("k must be in [%v, %v] but is %v", -d, d, k))
		}
		if k&1 != d&1 {
			panic(fmt.Sprintf("d and k must have same parity: %v vs %v", d, k))
		}
	}
	// The number of k's is always equal to d + 1. Therefore, we know how many k's were before
	// this d: (d + 1) * d / 2. We can then pack the k's into the next d slots.
	i := (d + 1) * d / 2
	j := k
	if k < 0 {
		j = -k - 1
	}
	return i + j
}

func computeMyersGraph(x, y []string) myersGraph {
	v := myersGraph{maxDepth: -1}
	dMax := len(x) + len(y)
	for d := range dMax + 1 {
		v.upgradeMaxDepth(d)
		for k := -d; k <= d; k += 2 {
			var s int
			if d == 0 {
				s = 0
			} else if k == -d || (k != d && v.get(d-1, k-1) < v.get(d-1, k+1)) {
				s = v.get(d-1, k+1)
			} else {
				s = v.get(d-1, k-1) + 1
			}
			t := s - k

			if s < len(x) && t < len(y) {
				lcp := longestCommonPrefix(x[s:], y[t:])
				s += lcp
				t += lcp
			}

			v.set(d, k, s)

			if s >= len(x) && t >= len(y) {
				return v
			}
		}
	}
	panic("never reached")
}
