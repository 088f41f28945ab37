// Package literal provides literal byte sequences extracted from
// patterns, the raw material for prefilter candidate scanning.
package literal

import (
	"bytes"
	"sort"
)

// Literal is one byte sequence that can begin a match. Complete marks
// a literal that is itself an entire match of the subexpression it
// was extracted from; only complete literals may be extended when
// crossing a concatenation.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// Seq is a set of alternative literals. A Seq produced by prefix
// extraction is a cover: every possible match starts with one of its
// literals.
type Seq struct {
	lits []Literal
}

// NewSeq returns an empty sequence.
func NewSeq() *Seq {
	return &Seq{}
}

// Singleton returns a sequence holding just l.
func Singleton(l Literal) *Seq {
	return &Seq{lits: []Literal{l}}
}

// Add appends a literal.
func (s *Seq) Add(l Literal) {
	s.lits = append(s.lits, l)
}

// Extend appends every literal of other.
func (s *Seq) Extend(other *Seq) {
	s.lits = append(s.lits, other.lits...)
}

// Len returns the number of literals.
func (s *Seq) Len() int {
	return len(s.lits)
}

// IsEmpty reports whether the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return len(s.lits) == 0
}

// Get returns the i-th literal.
func (s *Seq) Get(i int) Literal {
	return s.lits[i]
}

// HasEmpty reports whether any literal is zero-length. An empty
// literal makes a prefix cover useless for filtering.
func (s *Seq) HasEmpty() bool {
	for _, l := range s.lits {
		if len(l.Bytes) == 0 {
			return true
		}
	}
	return false
}

// MinLen returns the shortest literal length, or 0 for an empty Seq.
func (s *Seq) MinLen() int {
	if len(s.lits) == 0 {
		return 0
	}
	min := len(s.lits[0].Bytes)
	for _, l := range s.lits[1:] {
		if len(l.Bytes) < min {
			min = len(l.Bytes)
		}
	}
	return min
}

// MarkInexact clears the Complete flag on every literal, turning the
// sequence into a pure prefix cover.
func (s *Seq) MarkInexact() {
	for i := range s.lits {
		s.lits[i].Complete = false
	}
}

// Minimize sorts the literals, drops duplicates and removes any
// literal that has another literal as a prefix: if "a" is present,
// "ab" is redundant, and "a" alone keeps the cover complete.
func (s *Seq) Minimize() {
	if len(s.lits) <= 1 {
		return
	}
	sort.Slice(s.lits, func(i, j int) bool {
		return bytes.Compare(s.lits[i].Bytes, s.lits[j].Bytes) < 0
	})
	out := s.lits[:1]
	for _, l := range s.lits[1:] {
		prev := out[len(out)-1]
		if bytes.HasPrefix(l.Bytes, prev.Bytes) {
			continue
		}
		out = append(out, l)
	}
	s.lits = out
}

// Bytes returns the literal byte slices in order.
func (s *Seq) Bytes() [][]byte {
	out := make([][]byte, len(s.lits))
	for i, l := range s.lits {
		out[i] = l.Bytes
	}
	return out
}
