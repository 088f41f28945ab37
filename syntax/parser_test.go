package syntax

import (
	"errors"
	"testing"
)

func TestParseValid(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		caps    int
		rootOp  Op
	}{
		{"single literal", "a", 0, OpChar},
		{"literal run", "abc", 0, OpConcat},
		{"any", ".", 0, OpAnyChar},
		{"anchors", "^abc$", 0, OpConcat},
		{"class", "[a-z]", 0, OpClass},
		{"negated class", "[^0-9]", 0, OpClass},
		{"class literal bracket", "[]a]", 0, OpClass},
		{"group", "(a)", 1, OpCapture},
		{"nested groups", "((a)b)", 2, OpCapture},
		{"non-capturing", "(?:ab)", 0, OpConcat},
		{"alternation", "a|b|c", 0, OpAlternate},
		{"star", "a*", 0, OpStar},
		{"plus", "a+", 0, OpPlus},
		{"quest", "a?", 0, OpQuest},
		{"lazy star", "a*?", 0, OpStar},
		{"repeat exact", "a{3}", 0, OpRepeat},
		{"repeat open", "a{2,}", 0, OpRepeat},
		{"repeat range", "a{2,5}", 0, OpRepeat},
		{"literal brace", "a{x}", 0, OpConcat},
		{"escaped meta", `\.\*\(`, 0, OpConcat},
		{"perl class", `\d`, 0, OpClass},
		{"escaped newline", `\n`, 0, OpChar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.pattern, err)
			}
			if re.NumCaps != tt.caps {
				t.Errorf("NumCaps = %d, want %d", re.NumCaps, tt.caps)
			}
			if re.Root.Op != tt.rootOp {
				t.Errorf("root op = %v, want %v", re.Root.Op, tt.rootOp)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    error
	}{
		{"empty pattern", "", ErrEmptyPattern},
		{"empty branch", "a|", ErrEmptyPattern},
		{"empty leading branch", "|a", ErrEmptyPattern},
		{"empty group", "()", ErrEmptyGroup},
		{"unclosed group", "(a", ErrUnbalancedGroup},
		{"stray close", "a)", ErrUnbalancedGroup},
		{"leading star", "*a", ErrDanglingQuantifier},
		{"leading repeat", "{2}a", ErrDanglingQuantifier},
		{"double star", "a**", ErrNestedQuantifier},
		{"star after repeat", "a{2}*", ErrNestedQuantifier},
		{"unterminated class", "[abc", ErrInvalidClass},
		{"empty class", "[]", ErrInvalidClass},
		{"reversed range", "[z-a]", ErrInvalidClass},
		{"range to perl class", `[a-\d]`, ErrInvalidClass},
		{"reversed bounds", "a{3,2}", ErrInvalidRepeat},
		{"huge bound", "a{100000}", ErrInvalidRepeat},
		{"trailing backslash", `ab\`, ErrTrailingBackslash},
		{"named group", "(?P<x>a)", ErrUnsupportedGroup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := Parse(tt.pattern)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want %v", tt.pattern, tt.want)
			}
			if re != nil {
				t.Error("Parse returned a non-nil result alongside an error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.pattern, err, tt.want)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error is %T, want *ParseError", err)
			}
			if perr.Error() == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestParseDepthLimit(t *testing.T) {
	deep := ""
	for i := 0; i < 40; i++ {
		deep += "("
	}
	deep += "a"
	for i := 0; i < 40; i++ {
		deep += ")"
	}
	if _, err := ParseWithDepth(deep, 10); !errors.Is(err, ErrTooDeep) {
		t.Errorf("error = %v, want ErrTooDeep", err)
	}
	if _, err := ParseWithDepth(deep, 50); err != nil {
		t.Errorf("unexpected error at depth 50: %v", err)
	}
}

func TestCaptureIndexOrder(t *testing.T) {
	re, err := Parse("(a(b))(c)")
	if err != nil {
		t.Fatal(err)
	}
	if re.NumCaps != 3 {
		t.Fatalf("NumCaps = %d, want 3", re.NumCaps)
	}
	// Indices follow opening parens: (a(b)) is 1, (b) is 2, (c) is 3.
	outer := re.Root.Sub[0]
	if outer.Op != OpCapture || outer.Cap != 1 {
		t.Errorf("first group: op %v cap %d", outer.Op, outer.Cap)
	}
	inner := outer.Sub[0].Sub[1]
	if inner.Op != OpCapture || inner.Cap != 2 {
		t.Errorf("inner group: op %v cap %d", inner.Op, inner.Cap)
	}
	last := re.Root.Sub[1]
	if last.Op != OpCapture || last.Cap != 3 {
		t.Errorf("last group: op %v cap %d", last.Op, last.Cap)
	}
}

func TestClassMatches(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		b       byte
		fold    bool
		want    bool
	}{
		{"in range", "[a-z]", 'm', false, true},
		{"out of range", "[a-z]", 'M', false, false},
		{"folded letter", "[a-z]", 'M', true, true},
		{"negated hit", "[^a]", 'a', false, false},
		{"negated miss", "[^a]", 'b', false, true},
		{"negated fold", "[^a]", 'A', true, false},
		{"multi range", "[0-9a-f]", 'c', false, true},
		{"escaped member", `[\n\t]`, '\n', false, true},
		{"perl inside class", `[\d_]`, '_', false, true},
		{"negated perl inside class", `[\D]`, 'x', false, true},
		{"negated perl digit", `[\D]`, '5', false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := Parse(tt.pattern)
			if err != nil {
				t.Fatal(err)
			}
			if re.Root.Op != OpClass {
				t.Fatalf("root op = %v, want OpClass", re.Root.Op)
			}
			if got := re.Root.Class.Matches(tt.b, tt.fold); got != tt.want {
				t.Errorf("Matches(%q, fold=%v) = %v, want %v", tt.b, tt.fold, got, tt.want)
			}
		})
	}
}

func TestClassNormalize(t *testing.T) {
	re, err := Parse("[a-fc-mb]")
	if err != nil {
		t.Fatal(err)
	}
	cls := re.Root.Class
	if len(cls.Ranges) != 1 {
		t.Fatalf("ranges = %v, want a single merged range", cls.Ranges)
	}
	if cls.Ranges[0].Lo != 'a' || cls.Ranges[0].Hi != 'm' {
		t.Errorf("merged range = %v, want a-m", cls.Ranges[0])
	}
}

func TestRepeatBounds(t *testing.T) {
	re, err := Parse("a{2,5}")
	if err != nil {
		t.Fatal(err)
	}
	if re.Root.Min != 2 || re.Root.Max != 5 {
		t.Errorf("bounds = {%d,%d}, want {2,5}", re.Root.Min, re.Root.Max)
	}

	re, err = Parse("a{3,}")
	if err != nil {
		t.Fatal(err)
	}
	if re.Root.Min != 3 || re.Root.Max != -1 {
		t.Errorf("bounds = {%d,%d}, want {3,-1}", re.Root.Min, re.Root.Max)
	}
}
