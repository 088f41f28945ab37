// Package prefilter provides fast candidate filtering for unanchored
// search.
//
// A prefilter scans the subject for literal prefixes extracted from
// the pattern and yields candidate start offsets; the backtracking
// machine verifies each candidate. A prefilter never changes results,
// it only skips offsets that cannot begin a match:
//   - a single literal prefix is searched with bytes.Index
//   - multiple literal prefixes use an Aho-Corasick automaton
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"github.com/fossillogic/rex/literal"
	"github.com/fossillogic/rex/syntax"
	"github.com/fossillogic/rex/vm"
)

// Prefilter yields candidate start offsets for unanchored search.
type Prefilter interface {
	// Find returns the smallest candidate start offset at or after
	// 'at', or -1 when no candidate remains. A candidate is a
	// position where one of the extracted prefix literals occurs; the
	// caller must verify it with the full machine.
	Find(haystack []byte, at int) int
}

// FromPattern builds a prefilter for a parsed pattern, or nil when
// filtering is not applicable: anchored search never scans, and
// case-insensitive matching would need folded literals.
func FromPattern(re *syntax.Regexp, flags vm.Flags) Prefilter {
	if flags&(vm.FlagICase|vm.FlagAnchored) != 0 {
		return nil
	}
	seq := literal.Prefixes(re.Root, literal.DefaultExtractorConfig())
	if seq == nil {
		return nil
	}
	if seq.Len() == 1 {
		return &memmem{needle: seq.Get(0).Bytes}
	}
	builder := ahocorasick.NewBuilder()
	maxLen := 0
	for _, lit := range seq.Bytes() {
		builder.AddPattern(lit)
		if len(lit) > maxLen {
			maxLen = len(lit)
		}
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &multiLiteral{auto: auto, maxLen: maxLen}
}

// memmem searches for a single literal with bytes.Index, which is the
// platform-optimized substring search.
type memmem struct {
	needle []byte
}

func (m *memmem) Find(haystack []byte, at int) int {
	if at < 0 || at > len(haystack) {
		return -1
	}
	idx := bytes.Index(haystack[at:], m.needle)
	if idx < 0 {
		return -1
	}
	return at + idx
}

// multiLiteral searches for any of several literals with an
// Aho-Corasick automaton.
type multiLiteral struct {
	auto   *ahocorasick.Automaton
	maxLen int
}

func (m *multiLiteral) Find(haystack []byte, at int) int {
	if at < 0 || at > len(haystack) {
		return -1
	}
	match := m.auto.Find(haystack, at)
	if match == nil {
		return -1
	}
	// The automaton reports the occurrence with the earliest end.
	// When a short literal ends where a longer one does, the longer
	// occurrence starts earlier than the reported one; resume far
	// enough back that no occurrence is skipped.
	start := match.End - m.maxLen
	if start < at {
		start = at
	}
	if start > match.Start {
		start = match.Start
	}
	return start
}
