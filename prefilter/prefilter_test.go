package prefilter

import (
	"testing"

	"github.com/fossillogic/rex/syntax"
	"github.com/fossillogic/rex/vm"
)

func build(t *testing.T, pattern string, flags vm.Flags) Prefilter {
	t.Helper()
	re, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("parse %q: %v", pattern, err)
	}
	return FromPattern(re, flags)
}

func TestStrategySelection(t *testing.T) {
	// Single literal prefix: substring search.
	pf := build(t, "hello world", 0)
	if _, ok := pf.(*memmem); !ok {
		t.Errorf("single literal: got %T, want *memmem", pf)
	}

	// Several prefixes: automaton.
	pf = build(t, "foo|bar|baz", 0)
	if _, ok := pf.(*multiLiteral); !ok {
		t.Errorf("alternation: got %T, want *multiLiteral", pf)
	}

	// No usable cover.
	if pf = build(t, ".*x", 0); pf != nil {
		t.Errorf("dot-star: got %T, want nil", pf)
	}

	// Disabled under case folding and anchoring.
	if pf = build(t, "hello", vm.FlagICase); pf != nil {
		t.Errorf("icase: got %T, want nil", pf)
	}
	if pf = build(t, "hello", vm.FlagAnchored); pf != nil {
		t.Errorf("anchored: got %T, want nil", pf)
	}
}

func TestMemmemFind(t *testing.T) {
	pf := build(t, "needle", 0)
	haystack := []byte("hay needle hay needle")

	if got := pf.Find(haystack, 0); got != 4 {
		t.Errorf("Find(0) = %d, want 4", got)
	}
	if got := pf.Find(haystack, 5); got != 15 {
		t.Errorf("Find(5) = %d, want 15", got)
	}
	if got := pf.Find(haystack, 16); got != -1 {
		t.Errorf("Find(16) = %d, want -1", got)
	}
	if got := pf.Find(haystack, len(haystack)+1); got != -1 {
		t.Errorf("Find(past end) = %d, want -1", got)
	}
}

func TestMultiLiteralFind(t *testing.T) {
	pf := build(t, "cat|dog", 0)
	haystack := []byte("a dog then a cat")

	got := pf.Find(haystack, 0)
	if got < 0 || got > 2 {
		t.Errorf("Find(0) = %d, want a candidate at or before 2", got)
	}
	got = pf.Find(haystack, 3)
	if got < 3 || got > 13 {
		t.Errorf("Find(3) = %d, want a candidate at or before 13", got)
	}
	if got := pf.Find(haystack, 14); got != -1 {
		t.Errorf("Find(14) = %d, want -1", got)
	}
}

// Candidates must never start after a real occurrence: a skipped
// offset would silently lose the leftmost match.
func TestCandidatesAreConservative(t *testing.T) {
	tests := []struct {
		pattern  string
		haystack string
		first    int // leftmost occurrence start of any cover literal
	}{
		{"abc|xyz", "..xyz..abc", 2},
		// Overlapping literals of different lengths: the longer one
		// starts first and must not be skipped.
		{"ab|bc", "abc", 0},
		{"(ab|b)c", "zabc", 1},
	}
	for _, tt := range tests {
		pf := build(t, tt.pattern, 0)
		if pf == nil {
			t.Fatalf("%q: no prefilter", tt.pattern)
		}
		got := pf.Find([]byte(tt.haystack), 0)
		if got < 0 || got > tt.first {
			t.Errorf("%q on %q: candidate %d, want at most %d",
				tt.pattern, tt.haystack, got, tt.first)
		}
	}
}
