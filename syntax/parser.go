package syntax

// DefaultMaxDepth bounds group nesting during parsing.
const DefaultMaxDepth = 100

// MaxRepeat bounds each side of a {m,n} quantifier. Counted repeats
// are unrolled by the compiler, so this also bounds program growth.
const MaxRepeat = 1000

// Regexp is the result of parsing a pattern.
type Regexp struct {
	// Root is the root AST node.
	Root *Node

	// NumCaps is the number of capturing groups, not counting the
	// implicit whole-match group.
	NumCaps int

	// Source is the original pattern text.
	Source string
}

// Parse parses a pattern with the default nesting limit.
func Parse(pattern string) (*Regexp, error) {
	return ParseWithDepth(pattern, DefaultMaxDepth)
}

// ParseWithDepth parses a pattern, limiting group nesting to maxDepth.
func ParseWithDepth(pattern string, maxDepth int) (*Regexp, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	p := &parser{pattern: pattern, maxDepth: maxDepth}
	if pattern == "" {
		return nil, p.errorAt(0, ErrEmptyPattern)
	}
	root, err := p.parseAlternate(0)
	if err != nil {
		return nil, err
	}
	if p.pos != len(pattern) {
		// Only an unmatched ')' stops parseAlternate early.
		return nil, p.errorAt(p.pos, ErrUnbalancedGroup)
	}
	return &Regexp{Root: root, NumCaps: p.caps, Source: pattern}, nil
}

type parser struct {
	pattern  string
	pos      int
	caps     int
	maxDepth int
}

func (p *parser) errorAt(pos int, err error) error {
	return &ParseError{Pattern: p.pattern, Pos: pos, Err: err}
}

func (p *parser) more() bool {
	return p.pos < len(p.pattern)
}

func (p *parser) peek() byte {
	return p.pattern[p.pos]
}

// parseAlternate parses branch ('|' branch)*.
func (p *parser) parseAlternate(depth int) (*Node, error) {
	var branches []*Node
	for {
		branch, err := p.parseConcat(depth)
		if err != nil {
			return nil, err
		}
		if branch == nil {
			return nil, p.errorAt(p.pos, ErrEmptyPattern)
		}
		branches = append(branches, branch)
		if !p.more() || p.peek() != '|' {
			break
		}
		p.pos++ // consume '|'
	}
	if len(branches) == 1 {
		return branches[0], nil
	}
	return &Node{Op: OpAlternate, Sub: branches}, nil
}

// parseConcat parses a sequence of quantified atoms, stopping at '|',
// ')' or end of pattern. Returns nil for an empty sequence.
func (p *parser) parseConcat(depth int) (*Node, error) {
	var subs []*Node
	for p.more() {
		c := p.peek()
		if c == '|' || c == ')' {
			break
		}
		atom, err := p.parseAtom(depth)
		if err != nil {
			return nil, err
		}
		atom, err = p.applyQuantifier(atom)
		if err != nil {
			return nil, err
		}
		subs = append(subs, atom)
	}
	switch len(subs) {
	case 0:
		return nil, nil
	case 1:
		return subs[0], nil
	}
	return &Node{Op: OpConcat, Sub: subs}, nil
}

// applyQuantifier parses at most one quantifier (with optional lazy
// marker) following an atom. A second directly stacked quantifier is
// rejected; grouping is required to repeat a repetition.
func (p *parser) applyQuantifier(atom *Node) (*Node, error) {
	if !p.more() {
		return atom, nil
	}
	var node *Node
	switch p.peek() {
	case '*':
		p.pos++
		node = &Node{Op: OpStar, Sub: []*Node{atom}}
	case '+':
		p.pos++
		node = &Node{Op: OpPlus, Sub: []*Node{atom}}
	case '?':
		p.pos++
		node = &Node{Op: OpQuest, Sub: []*Node{atom}}
	case '{':
		min, max, end, ok, err := p.tryParseBounds(p.pos)
		if err != nil {
			return nil, err
		}
		if !ok {
			return atom, nil // literal '{', already consumed as atom's sibling
		}
		p.pos = end
		node = &Node{Op: OpRepeat, Sub: []*Node{atom}, Min: min, Max: max}
	default:
		return atom, nil
	}
	if p.more() && p.peek() == '?' {
		node.Lazy = true
		p.pos++
	}
	if p.more() {
		switch p.peek() {
		case '*', '+', '?':
			return nil, p.errorAt(p.pos, ErrNestedQuantifier)
		case '{':
			if _, _, _, ok, _ := p.tryParseBounds(p.pos); ok {
				return nil, p.errorAt(p.pos, ErrNestedQuantifier)
			}
		}
	}
	return node, nil
}

// tryParseBounds attempts to read "{m}", "{m,}" or "{m,n}" starting at
// from (which must point at '{'). ok is false when the text is not a
// well-formed counted quantifier, in which case '{' is an ordinary
// literal. A well-formed quantifier with n < m or a bound above
// MaxRepeat is an error.
func (p *parser) tryParseBounds(from int) (min, max, end int, ok bool, err error) {
	i := from + 1
	min, i, valid := p.scanInt(i)
	if !valid {
		return 0, 0, 0, false, nil
	}
	max = min
	if i < len(p.pattern) && p.pattern[i] == ',' {
		i++
		if i < len(p.pattern) && p.pattern[i] == '}' {
			max = -1
		} else {
			max, i, valid = p.scanInt(i)
			if !valid {
				return 0, 0, 0, false, nil
			}
		}
	}
	if i >= len(p.pattern) || p.pattern[i] != '}' {
		return 0, 0, 0, false, nil
	}
	i++
	if min > MaxRepeat || max > MaxRepeat || (max != -1 && max < min) {
		return 0, 0, 0, false, p.errorAt(from, ErrInvalidRepeat)
	}
	return min, max, i, true, nil
}

// scanInt reads a decimal integer at i. valid is false when no digits
// are present.
func (p *parser) scanInt(i int) (n, next int, valid bool) {
	start := i
	for i < len(p.pattern) && p.pattern[i] >= '0' && p.pattern[i] <= '9' {
		n = n*10 + int(p.pattern[i]-'0')
		if n > 10*MaxRepeat {
			// Clamp to keep overflow impossible; bound check happens later.
			n = 10 * MaxRepeat
		}
		i++
	}
	return n, i, i > start
}

func (p *parser) parseAtom(depth int) (*Node, error) {
	c := p.peek()
	switch c {
	case '(':
		return p.parseGroup(depth)
	case ')':
		return nil, p.errorAt(p.pos, ErrUnbalancedGroup)
	case '[':
		return p.parseClass()
	case '.':
		p.pos++
		return &Node{Op: OpAnyChar}, nil
	case '^':
		p.pos++
		return &Node{Op: OpBegin}, nil
	case '$':
		p.pos++
		return &Node{Op: OpEnd}, nil
	case '*', '+', '?':
		return nil, p.errorAt(p.pos, ErrDanglingQuantifier)
	case '{':
		if _, _, _, ok, err := p.tryParseBounds(p.pos); err != nil {
			return nil, err
		} else if ok {
			return nil, p.errorAt(p.pos, ErrDanglingQuantifier)
		}
		p.pos++
		return &Node{Op: OpChar, Byte: c}, nil
	case '\\':
		return p.parseEscape()
	default:
		p.pos++
		return &Node{Op: OpChar, Byte: c}, nil
	}
}

func (p *parser) parseGroup(depth int) (*Node, error) {
	open := p.pos
	if depth+1 > p.maxDepth {
		return nil, p.errorAt(open, ErrTooDeep)
	}
	p.pos++ // consume '('
	capture := true
	if p.pos+1 < len(p.pattern) && p.pattern[p.pos] == '?' {
		if p.pattern[p.pos+1] != ':' {
			return nil, p.errorAt(p.pos, ErrUnsupportedGroup)
		}
		capture = false
		p.pos += 2
	}
	if p.more() && p.peek() == ')' {
		return nil, p.errorAt(open, ErrEmptyGroup)
	}
	index := 0
	if capture {
		p.caps++
		index = p.caps
	}
	sub, err := p.parseAlternate(depth + 1)
	if err != nil {
		return nil, err
	}
	if !p.more() || p.peek() != ')' {
		return nil, p.errorAt(open, ErrUnbalancedGroup)
	}
	p.pos++ // consume ')'
	if !capture {
		return sub, nil
	}
	return &Node{Op: OpCapture, Sub: []*Node{sub}, Cap: index}, nil
}

// parseEscape handles '\' outside a character class.
func (p *parser) parseEscape() (*Node, error) {
	start := p.pos
	p.pos++ // consume '\'
	if !p.more() {
		return nil, p.errorAt(start, ErrTrailingBackslash)
	}
	c := p.peek()
	p.pos++
	if cls, ok := perlClass(c); ok {
		return &Node{Op: OpClass, Class: cls}, nil
	}
	if b, ok := controlEscape(c); ok {
		return &Node{Op: OpChar, Byte: b}, nil
	}
	// Any other escaped byte is a literal, covering \. \\ \* \[ etc.
	return &Node{Op: OpChar, Byte: c}, nil
}

// perlClass maps \d \D \w \W \s \S shorthand letters to classes.
func perlClass(c byte) (*Class, bool) {
	switch c {
	case 'd':
		return classDigit, true
	case 'D':
		return negated(classDigit), true
	case 'w':
		return classWord, true
	case 'W':
		return negated(classWord), true
	case 's':
		return classSpace, true
	case 'S':
		return negated(classSpace), true
	}
	return nil, false
}

func negated(c *Class) *Class {
	return &Class{Ranges: c.Ranges, Negate: !c.Negate}
}

func controlEscape(c byte) (byte, bool) {
	switch c {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case 'f':
		return '\f', true
	case 'v':
		return '\v', true
	case 'a':
		return '\a', true
	case '0':
		return 0, true
	}
	return 0, false
}

// parseClass parses a [...] or [^...] character class. A ']' directly
// after the opening bracket (or after '^') is a literal member.
func (p *parser) parseClass() (*Node, error) {
	open := p.pos
	p.pos++ // consume '['
	cls := &Class{}
	if p.more() && p.peek() == '^' {
		cls.Negate = true
		p.pos++
	}
	first := true
	for {
		if !p.more() {
			return nil, p.errorAt(open, ErrInvalidClass)
		}
		c := p.peek()
		if c == ']' && !first {
			p.pos++
			break
		}
		first = false

		lo, isRange, err := p.classMember(cls, open)
		if err != nil {
			return nil, err
		}
		if !isRange {
			continue
		}
		// A single byte was read into lo; check for a range.
		if p.more() && p.peek() == '-' && p.pos+1 < len(p.pattern) && p.pattern[p.pos+1] != ']' {
			p.pos++ // consume '-'
			hi, ok, err := p.classRangeEnd(open)
			if err != nil {
				return nil, err
			}
			if !ok || hi < lo {
				return nil, p.errorAt(open, ErrInvalidClass)
			}
			cls.add(lo, hi)
			continue
		}
		cls.add(lo, lo)
	}
	cls.normalize()
	if len(cls.Ranges) == 0 {
		return nil, p.errorAt(open, ErrInvalidClass)
	}
	return &Node{Op: OpClass, Class: cls}, nil
}

// classMember consumes one class member. When the member is a single
// byte that may begin a range, it is returned with isRange set and not
// yet added to cls; shorthand classes are merged into cls directly.
func (p *parser) classMember(cls *Class, open int) (b byte, isRange bool, err error) {
	c := p.peek()
	if c != '\\' {
		p.pos++
		return c, true, nil
	}
	p.pos++ // consume '\'
	if !p.more() {
		return 0, false, p.errorAt(open, ErrInvalidClass)
	}
	e := p.peek()
	p.pos++
	if sub, ok := perlClass(e); ok {
		mergeClass(cls, sub)
		return 0, false, nil
	}
	if ctrl, ok := controlEscape(e); ok {
		return ctrl, true, nil
	}
	return e, true, nil
}

// classRangeEnd consumes the upper bound of a range. Shorthand classes
// cannot end a range.
func (p *parser) classRangeEnd(open int) (byte, bool, error) {
	if !p.more() {
		return 0, false, p.errorAt(open, ErrInvalidClass)
	}
	c := p.peek()
	if c != '\\' {
		p.pos++
		return c, true, nil
	}
	p.pos++
	if !p.more() {
		return 0, false, p.errorAt(open, ErrInvalidClass)
	}
	e := p.peek()
	if _, ok := perlClass(e); ok {
		return 0, false, p.errorAt(open, ErrInvalidClass)
	}
	p.pos++
	if ctrl, ok := controlEscape(e); ok {
		return ctrl, true, nil
	}
	return e, true, nil
}

// mergeClass folds the ranges of sub into cls, expanding a negated
// shorthand (\D inside [...]) to its complement first.
func mergeClass(cls *Class, sub *Class) {
	if !sub.Negate {
		cls.Ranges = append(cls.Ranges, sub.Ranges...)
		return
	}
	cls.Ranges = append(cls.Ranges, complement(sub.Ranges)...)
}

// complement returns the ranges covering every byte not in rs.
// rs must be sorted and non-overlapping.
func complement(rs []ClassRange) []ClassRange {
	var out []ClassRange
	next := 0
	for _, r := range rs {
		if int(r.Lo) > next {
			out = append(out, ClassRange{Lo: byte(next), Hi: r.Lo - 1})
		}
		next = int(r.Hi) + 1
	}
	if next <= 255 {
		out = append(out, ClassRange{Lo: byte(next), Hi: 255})
	}
	return out
}
