package literal

import (
	"github.com/fossillogic/rex/syntax"
)

// ExtractorConfig bounds prefix extraction.
type ExtractorConfig struct {
	// MaxLiterals limits the size of the extracted cover. Alternations
	// and class expansion multiply literal counts; past this limit the
	// cover would be too wide to filter with.
	MaxLiterals int

	// MaxLiteralLen limits each literal's length. Longer literals are
	// truncated and marked inexact.
	MaxLiteralLen int

	// MaxClassSize limits character class expansion. [abc] expands to
	// three literals; [a-z] does not expand at all.
	MaxClassSize int
}

// DefaultExtractorConfig returns the limits used by the engine.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 16,
		MaxClassSize:  4,
	}
}

// Prefixes extracts a prefix cover from a parsed pattern: a literal
// set such that every possible match begins with one of the literals.
// It returns nil when no useful cover exists (the pattern can start
// with arbitrary bytes, the cover would contain an empty literal, or
// the limits are exceeded).
func Prefixes(root *syntax.Node, config ExtractorConfig) *Seq {
	e := &extractor{config: config}
	seq, ok := e.extract(root)
	if !ok || seq.IsEmpty() || seq.HasEmpty() {
		return nil
	}
	seq.Minimize()
	if seq.Len() > config.MaxLiterals {
		return nil
	}
	return seq
}

type extractor struct {
	config ExtractorConfig
}

// extract walks the AST. ok is false when the node admits matches the
// extractor cannot cover with literals.
func (e *extractor) extract(n *syntax.Node) (*Seq, bool) {
	switch n.Op {
	case syntax.OpChar:
		return Singleton(Literal{Bytes: []byte{n.Byte}, Complete: true}), true

	case syntax.OpClass:
		return e.expandClass(n.Class)

	case syntax.OpBegin, syntax.OpEnd:
		// Assertions are zero-width; transparent to prefixes.
		return Singleton(Literal{Complete: true}), true

	case syntax.OpCapture:
		return e.extract(n.Sub[0])

	case syntax.OpConcat:
		return e.concat(n.Sub)

	case syntax.OpAlternate:
		return e.alternate(n.Sub)

	case syntax.OpQuest:
		sub, ok := e.extract(n.Sub[0])
		if !ok {
			return nil, false
		}
		seq := Singleton(Literal{Complete: true})
		seq.Extend(sub)
		return seq, true

	case syntax.OpStar:
		sub, ok := e.extract(n.Sub[0])
		if !ok {
			return nil, false
		}
		// Looping may repeat the body, so body literals are only
		// prefixes of the star's matches.
		sub.MarkInexact()
		seq := Singleton(Literal{Complete: true})
		seq.Extend(sub)
		return seq, true

	case syntax.OpPlus:
		sub, ok := e.extract(n.Sub[0])
		if !ok {
			return nil, false
		}
		sub.MarkInexact()
		return sub, true

	case syntax.OpRepeat:
		sub, ok := e.extract(n.Sub[0])
		if !ok {
			return nil, false
		}
		sub.MarkInexact()
		if n.Min == 0 {
			seq := Singleton(Literal{Complete: true})
			seq.Extend(sub)
			return seq, true
		}
		return sub, true
	}
	// OpAnyChar and anything unrecognized: no cover.
	return nil, false
}

// concat crosses sub-prefixes left to right. Only complete literals
// can be extended; once extension becomes impossible the accumulated
// complete literals degrade to plain prefixes.
func (e *extractor) concat(subs []*syntax.Node) (*Seq, bool) {
	seq := Singleton(Literal{Complete: true})
	for _, sub := range subs {
		if !hasComplete(seq) {
			break
		}
		subSeq, ok := e.extract(sub)
		if !ok {
			seq.MarkInexact()
			break
		}
		crossed, ok := e.cross(seq, subSeq)
		if !ok {
			seq.MarkInexact()
			break
		}
		seq = crossed
	}
	return seq, true
}

// cross extends each complete literal of seq with every literal of
// next. ok is false when the product would exceed MaxLiterals.
func (e *extractor) cross(seq, next *Seq) (*Seq, bool) {
	out := NewSeq()
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		if !lit.Complete {
			out.Add(lit)
			continue
		}
		for j := 0; j < next.Len(); j++ {
			nl := next.Get(j)
			joined := make([]byte, 0, len(lit.Bytes)+len(nl.Bytes))
			joined = append(joined, lit.Bytes...)
			joined = append(joined, nl.Bytes...)
			complete := lit.Complete && nl.Complete
			if len(joined) > e.config.MaxLiteralLen {
				joined = joined[:e.config.MaxLiteralLen]
				complete = false
			}
			out.Add(Literal{Bytes: joined, Complete: complete})
			if out.Len() > e.config.MaxLiterals {
				return nil, false
			}
		}
	}
	return out, true
}

func (e *extractor) alternate(subs []*syntax.Node) (*Seq, bool) {
	seq := NewSeq()
	for _, sub := range subs {
		subSeq, ok := e.extract(sub)
		if !ok {
			return nil, false
		}
		seq.Extend(subSeq)
		if seq.Len() > e.config.MaxLiterals {
			return nil, false
		}
	}
	return seq, true
}

// expandClass enumerates small positive classes into single-byte
// literals. Negated or wide classes have no useful cover.
func (e *extractor) expandClass(c *syntax.Class) (*Seq, bool) {
	if c.Negate || c.Size() > e.config.MaxClassSize {
		return nil, false
	}
	seq := NewSeq()
	for _, r := range c.Ranges {
		for b := int(r.Lo); b <= int(r.Hi); b++ {
			seq.Add(Literal{Bytes: []byte{byte(b)}, Complete: true})
		}
	}
	return seq, true
}

func hasComplete(s *Seq) bool {
	for i := 0; i < s.Len(); i++ {
		if s.Get(i).Complete {
			return true
		}
	}
	return false
}
