// Package syntax implements the pattern parser for the rex engine.
//
// Patterns are parsed by a hand-written recursive-descent parser into a
// small AST which the vm package compiles into a bytecode program. The
// dialect is byte-oriented: no Unicode classes, no named groups, no
// lookaround.
package syntax

// Op identifies the kind of an AST node.
type Op uint8

const (
	// OpChar matches a single literal byte (Node.Byte).
	OpChar Op = iota

	// OpAnyChar matches any byte. Whether '\n' is included is decided
	// at match time by the dotall option.
	OpAnyChar

	// OpClass matches a byte against Node.Class.
	OpClass

	// OpConcat matches Node.Sub in sequence.
	OpConcat

	// OpAlternate matches any of Node.Sub, preferring earlier ones.
	OpAlternate

	// OpStar, OpPlus, OpQuest are the *, + and ? quantifiers over
	// Node.Sub[0]. Node.Lazy marks the lazy variant.
	OpStar
	OpPlus
	OpQuest

	// OpRepeat is the counted {m,n} quantifier over Node.Sub[0].
	// Node.Max == -1 means no upper bound.
	OpRepeat

	// OpCapture is a capturing group around Node.Sub[0] with
	// 1-based index Node.Cap.
	OpCapture

	// OpBegin and OpEnd are the ^ and $ assertions. Line-boundary
	// behavior is decided at match time by the multiline option.
	OpBegin
	OpEnd
)

// String returns a human-readable name for the op.
func (op Op) String() string {
	switch op {
	case OpChar:
		return "Char"
	case OpAnyChar:
		return "AnyChar"
	case OpClass:
		return "Class"
	case OpConcat:
		return "Concat"
	case OpAlternate:
		return "Alternate"
	case OpStar:
		return "Star"
	case OpPlus:
		return "Plus"
	case OpQuest:
		return "Quest"
	case OpRepeat:
		return "Repeat"
	case OpCapture:
		return "Capture"
	case OpBegin:
		return "Begin"
	case OpEnd:
		return "End"
	}
	return "Unknown"
}

// Node is a single AST node. Which fields are meaningful depends on Op.
type Node struct {
	Op  Op
	Sub []*Node

	Byte  byte   // OpChar
	Class *Class // OpClass

	Min, Max int  // OpRepeat bounds; Max == -1 means unbounded
	Lazy     bool // quantifiers: lazy variant

	Cap int // OpCapture: 1-based group index
}

// ClassRange is an inclusive byte range inside a character class.
type ClassRange struct {
	Lo, Hi byte
}

// Class is a set of byte ranges with an optional negation flag,
// the parsed form of [...] and [^...].
//
// Ranges are kept sorted by Lo and non-overlapping after normalize.
type Class struct {
	Ranges []ClassRange
	Negate bool
}

// add appends a range without normalizing.
func (c *Class) add(lo, hi byte) {
	c.Ranges = append(c.Ranges, ClassRange{Lo: lo, Hi: hi})
}

// normalize sorts and merges overlapping or adjacent ranges.
func (c *Class) normalize() {
	if len(c.Ranges) <= 1 {
		return
	}
	// Insertion sort: classes are tiny, avoid importing sort.
	for i := 1; i < len(c.Ranges); i++ {
		for j := i; j > 0 && c.Ranges[j].Lo < c.Ranges[j-1].Lo; j-- {
			c.Ranges[j], c.Ranges[j-1] = c.Ranges[j-1], c.Ranges[j]
		}
	}
	out := c.Ranges[:1]
	for _, r := range c.Ranges[1:] {
		last := &out[len(out)-1]
		if r.Lo <= last.Hi || (last.Hi < 255 && r.Lo == last.Hi+1) {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		out = append(out, r)
	}
	c.Ranges = out
}

// contains reports whether b falls in any range, ignoring negation.
func (c *Class) contains(b byte) bool {
	for _, r := range c.Ranges {
		if b >= r.Lo && b <= r.Hi {
			return true
		}
	}
	return false
}

// Matches reports whether byte b is accepted by the class. With
// foldCase set, an ASCII letter also matches via its other-case form;
// negation is applied after folding, so [^a] with folding rejects both
// 'a' and 'A'.
func (c *Class) Matches(b byte, foldCase bool) bool {
	in := c.contains(b)
	if !in && foldCase {
		if alt, ok := swapCase(b); ok {
			in = c.contains(alt)
		}
	}
	return in != c.Negate
}

// Size returns the number of distinct bytes the class accepts,
// ignoring negation and case folding.
func (c *Class) Size() int {
	n := 0
	for _, r := range c.Ranges {
		n += int(r.Hi) - int(r.Lo) + 1
	}
	return n
}

func swapCase(b byte) (byte, bool) {
	switch {
	case b >= 'a' && b <= 'z':
		return b - 'a' + 'A', true
	case b >= 'A' && b <= 'Z':
		return b - 'A' + 'a', true
	}
	return 0, false
}

// Perl class shorthands, shared by the parser for \d \w \s and their
// negated forms. ASCII semantics only.
var (
	classDigit = &Class{Ranges: []ClassRange{{'0', '9'}}}
	classWord  = &Class{Ranges: []ClassRange{{'0', '9'}, {'A', 'Z'}, {'_', '_'}, {'a', 'z'}}}
	classSpace = &Class{Ranges: []ClassRange{{'\t', '\r'}, {' ', ' '}}}
)
