package diff

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	znkrdiff "znkr.io/diff"
)

func TestAlign(t *testing.T) {
	tests := []struct {
		name string
		x, y []string
		want []Edit
	}{
		{
			name: "identical",
			x:    []string{"foo", "bar", "baz"},
			y:    []string{"foo", "bar", "baz"},
			want: []Edit{
				{Match, 0, 3, 0, 3},
			},
		},
		{
			name: "empty",
		},
		{
			name: "x-empty",
			y:    []string{"foo", "bar", "baz"},
			want: []Edit{
				{Insert, 0, 0, 0, 3},
			},
		},
		{
			name: "y-empty",
			x:    []string{"foo", "bar", "baz"},
			want: []Edit{
				{Delete, 0, 3, 0, 0},
			},
		},
		{
			name: "ABCABBA_to_CBABAC",
			x:    strings.Split("ABCABBA", ""),
			y:    strings.Split("CBABAC", ""),
			want: []Edit{
				{Delete, 0, 2, 0, 0},
				{Match, 2, 3, 0, 1},
				{Insert, 3, 3, 1, 2},
				{Match, 3, 5, 2, 4},
				{Delete, 5, 6, 4, 4},
				{Match, 6, 7, 4, 5},
				{Insert, 7, 7, 5, 6},
			},
		},
		{
			name: "same-prefix",
			x:    []string{"foo", "bar"},
			y:    []string{"foo", "baz"},
			want: []Edit{
				{Match, 0, 1, 0, 1},
				{Delete, 1, 2, 1, 1},
				{Insert, 2, 2, 1, 2},
			},
		},
		{
			name: "same-suffix",
			x:    []string{"foo", "bar"},
			y:    []string{"loo", "bar"},
			want: []Edit{
				{Delete, 0, 1, 0, 0},
				{Insert, 1, 1, 0, 1},
				{Match, 1, 2, 1, 2},
			},
		},
		{
			name: "repeated-elements",
			x:    []string{"a", "a"},
			y:    []string{"a", "b", "a", "b", "a"},
			want: []Edit{
				{Match, 0, 1, 0, 1},
				{Insert, 1, 1, 1, 2},
				{Match, 1, 2, 2, 3},
				{Insert, 2, 2, 3, 5},
			},
		},
		{
			name: "append-at-end",
			x: []string{
				"func f() int {",
				"	return 0",
				"}",
			},
			y: []string{
				"func f() int {",
				"	return 0",
				"}",
				"",
				"func g() int {",
				"	return 42",
				"}",
			},
			want: []Edit{
				{Match, 0, 3, 0, 3},
				{Insert, 3, 3, 3, 7},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Align(tt.x, tt.y)
			if diff := cmp.Diff(Script{Edits: tt.want}, got); diff != "" {
				t.Errorf("Align result is different (-want, +got):\n%s", diff)
			}
			if err := got.Validate(len(tt.x), len(tt.y)); err != nil {
				t.Errorf("Align produced an invalid script: %v", err)
			}
		})
	}
}

func TestAlignIdentity(t *testing.T) {
	x := []string{"a", "b", "c", "d"}
	got := Align(x, x)
	want := Script{Edits: []Edit{{Match, 0, 4, 0, 4}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Align result is different (-want, +got):\n%s", diff)
	}
	if !got.IsIdentity() {
		t.Errorf("IsIdentity() = false, want true")
	}
}

func TestAlignProperties(t *testing.T) {
	for i, tc := range corpus() {
		x, y := tc[0], tc[1]
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			got := Align(x, y)

			if err := got.Validate(len(x), len(y)); err != nil {
				t.Fatalf("coverage invariant violated: %v", err)
			}

			if diff := cmp.Diff(y, reconstruct(x, y, got)); diff != "" {
				t.Errorf("applying the script to x does not reconstruct y (-want, +got):\n%s", diff)
			}

			if diff := cmp.Diff(got, Align(x, y)); diff != "" {
				t.Errorf("Align is not deterministic (-first, +second):\n%s", diff)
			}

			want := len(x) + len(y) - 2*lcsLen(x, y)
			if got := changes(got); got != want {
				t.Errorf("script has %d line changes, want %d", got, want)
			}
		})
	}
}

func TestAlignMatchesOptimalOracle(t *testing.T) {
	for i, tc := range corpus() {
		x, y := tc[0], tc[1]
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			want := 0
			for _, e := range znkrdiff.Edits(x, y, znkrdiff.Minimal()) {
				if e.Op != znkrdiff.Match {
					want++
				}
			}
			if got := changes(Align(x, y)); got != want {
				t.Errorf("script has %d line changes, oracle found %d", got, want)
			}
		})
	}
}

// corpus returns small deterministic input pairs covering empty, identical,
// disjoint, and randomly mutated sequences.
func corpus() [][2][]string {
	pairs := [][2][]string{
		{nil, nil},
		{nil, {"a"}},
		{{"a"}, nil},
		{{"a", "b", "c"}, {"a", "x", "c"}},
		{{"a", "b", "c"}, {"d", "e", "f"}},
		{strings.Split("ABCABBA", ""), strings.Split("CBABAC", "")},
	}

	rng := rand.New(rand.NewSource(42))
	alphabet := []string{"a", "b", "c", "d"}
	for range 50 {
		n := rng.Intn(12)
		x := make([]string, n)
		for i := range x {
			x[i] = alphabet[rng.Intn(len(alphabet))]
		}
		y := slicesCloneMutate(rng, x, alphabet)
		pairs = append(pairs, [2][]string{x, y})
	}
	return pairs
}

func slicesCloneMutate(rng *rand.Rand, x, alphabet []string) []string {
	var y []string
	for _, s := range x {
		switch rng.Intn(4) {
		case 0: // delete
		case 1: // replace
			y = append(y, alphabet[rng.Intn(len(alphabet))])
		case 2: // insert before
			y = append(y, alphabet[rng.Intn(len(alphabet))], s)
		default: // keep
			y = append(y, s)
		}
	}
	return y
}

// reconstruct applies s to x: Match ranges copy from x, Insert ranges copy
// from y, Delete ranges are skipped.
func reconstruct(x, y []string, s Script) []string {
	var out []string
	for _, e := range s.Edits {
		switch e.Op {
		case Match:
			out = append(out, x[e.X0:e.X1]...)
		case Insert:
			out = append(out, y[e.Y0:e.Y1]...)
		}
	}
	return out
}

func changes(s Script) int {
	st := s.Stats()
	return st.Added + st.Deleted
}

// lcsLen computes the length of the longest common subsequence by dynamic
// programming, independent of the aligner.
func lcsLen(x, y []string) int {
	prev := make([]int, len(y)+1)
	cur := make([]int, len(y)+1)
	for i := 1; i <= len(x); i++ {
		for j := 1; j <= len(y); j++ {
			if x[i-1] == y[j-1] {
				cur[j] = prev[j-1] + 1
			} else {
				cur[j] = max(prev[j], cur[j-1])
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(y)]
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       Script
		nx, ny  int
		wantErr bool
	}{
		{
			name: "valid",
			s: Script{Edits: []Edit{
				{Match, 0, 1, 0, 1},
				{Delete, 1, 2, 1, 1},
				{Insert, 2, 2, 1, 3},
			}},
			nx: 2, ny: 3,
		},
		{
			name: "empty-valid",
			s:    Script{},
			nx:   0, ny: 0,
		},
		{
			name: "gap-in-x",
			s: Script{Edits: []Edit{
				{Match, 0, 1, 0, 1},
				{Delete, 2, 3, 1, 1},
			}},
			nx: 3, ny: 1, wantErr: true,
		},
		{
			name: "incomplete-coverage",
			s: Script{Edits: []Edit{
				{Match, 0, 1, 0, 1},
			}},
			nx: 2, ny: 1, wantErr: true,
		},
		{
			name: "empty-edit",
			s: Script{Edits: []Edit{
				{Match, 0, 0, 0, 0},
			}},
			nx: 0, ny: 0, wantErr: true,
		},
		{
			name: "adjacent-matches",
			s: Script{Edits: []Edit{
				{Match, 0, 1, 0, 1},
				{Match, 1, 2, 1, 2},
			}},
			nx: 2, ny: 2, wantErr: true,
		},
		{
			name: "insert-before-delete",
			s: Script{Edits: []Edit{
				{Insert, 0, 0, 0, 1},
				{Delete, 0, 1, 1, 1},
			}},
			nx: 1, ny: 1, wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate(tt.nx, tt.ny)
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestStats(t *testing.T) {
	tests := []struct {
		name string
		x, y []string
		want Stats
	}{
		{
			name: "replace-and-insert",
			x:    []string{"a", "b"},
			y:    []string{"a", "c", "d"},
			want: Stats{Unchanged: 1, Added: 2, Deleted: 1, Hunks: 1},
		},
		{
			name: "identical",
			x:    []string{"a", "b"},
			y:    []string{"a", "b"},
			want: Stats{Unchanged: 2},
		},
		{
			name: "empty",
			want: Stats{},
		},
		{
			name: "two-separated-changes",
			x:    []string{"a", "b", "c", "d", "e"},
			y:    []string{"x", "b", "c", "d", "y"},
			want: Stats{Unchanged: 3, Added: 2, Deleted: 2, Hunks: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Align(tt.x, tt.y).Stats()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Stats result is different (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		x, y []string
		want float64
	}{
		{name: "both-empty", want: 1},
		{name: "identical", x: []string{"a"}, y: []string{"a"}, want: 1},
		{name: "disjoint", x: []string{"a"}, y: []string{"b"}, want: 0},
		{name: "partial", x: []string{"a", "b"}, y: []string{"a", "c", "d"}, want: 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Align(tt.x, tt.y).Stats().Similarity()
			if got != tt.want {
				t.Errorf("Similarity() = %v, want %v", got, tt.want)
			}
		})
	}
}
