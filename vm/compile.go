package vm

import (
	"github.com/fossillogic/rex/syntax"
)

// MaxProgramSize caps the instruction count of a compiled program.
// Counted repeats are unrolled, so this bounds pattern-driven growth.
const MaxProgramSize = 1 << 16

// Compile lowers a parsed pattern into a bytecode program.
//
// Code generation is Thompson-style: quantifiers and alternation
// become OpSplit/OpJump pairs, capturing group i brackets its body
// with OpSave(2i) and OpSave(2i+1). The first OpSplit target is the
// preferred branch; that ordering is what makes greedy quantifiers
// consume more and alternation prefer left alternatives. FlagUngreedy
// flips the per-quantifier default.
func Compile(re *syntax.Regexp, flags Flags) (*Program, error) {
	c := &compiler{flags: flags}
	c.emit(Inst{Op: OpSave, X: 0})
	if err := c.node(re.Root); err != nil {
		return nil, &CompileError{Pattern: re.Source, Err: err}
	}
	c.emit(Inst{Op: OpSave, X: 1})
	c.emit(Inst{Op: OpMatch})
	if len(c.insts) > MaxProgramSize {
		return nil, &CompileError{Pattern: re.Source, Err: ErrProgramTooLarge}
	}
	return &Program{
		insts:   c.insts,
		numCaps: re.NumCaps + 1,
		flags:   flags,
	}, nil
}

type compiler struct {
	insts []Inst
	flags Flags
}

// emit appends an instruction and returns its address.
func (c *compiler) emit(in Inst) int {
	c.insts = append(c.insts, in)
	return len(c.insts) - 1
}

// pc returns the address the next instruction will get.
func (c *compiler) pc() int {
	return len(c.insts)
}

// lazy resolves a quantifier's effective preference under FlagUngreedy.
func (c *compiler) lazy(n *syntax.Node) bool {
	if c.flags&FlagUngreedy != 0 {
		return !n.Lazy
	}
	return n.Lazy
}

func (c *compiler) node(n *syntax.Node) error {
	if len(c.insts) > MaxProgramSize {
		return ErrProgramTooLarge
	}
	switch n.Op {
	case syntax.OpChar:
		c.emit(Inst{Op: OpChar, C: n.Byte})
	case syntax.OpClass:
		c.emit(Inst{Op: OpClass, Class: n.Class})
	case syntax.OpAnyChar:
		c.emit(Inst{Op: OpAny})
	case syntax.OpBegin:
		c.emit(Inst{Op: OpAssertBegin})
	case syntax.OpEnd:
		c.emit(Inst{Op: OpAssertEnd})
	case syntax.OpConcat:
		for _, sub := range n.Sub {
			if err := c.node(sub); err != nil {
				return err
			}
		}
	case syntax.OpCapture:
		c.emit(Inst{Op: OpSave, X: 2 * n.Cap})
		if err := c.node(n.Sub[0]); err != nil {
			return err
		}
		c.emit(Inst{Op: OpSave, X: 2*n.Cap + 1})
	case syntax.OpAlternate:
		return c.alternate(n.Sub)
	case syntax.OpStar:
		return c.star(n.Sub[0], c.lazy(n))
	case syntax.OpPlus:
		return c.plus(n.Sub[0], c.lazy(n))
	case syntax.OpQuest:
		return c.quest(n.Sub[0], c.lazy(n))
	case syntax.OpRepeat:
		return c.repeat(n)
	}
	return nil
}

// alternate compiles n.Sub with left preference: each branch but the
// last gets a split whose preferred target is the branch body and
// whose alternative is the rest of the chain.
func (c *compiler) alternate(subs []*syntax.Node) error {
	var jumps []int
	for i, sub := range subs {
		if i == len(subs)-1 {
			if err := c.node(sub); err != nil {
				return err
			}
			break
		}
		split := c.emit(Inst{Op: OpSplit})
		c.insts[split].X = c.pc()
		if err := c.node(sub); err != nil {
			return err
		}
		jumps = append(jumps, c.emit(Inst{Op: OpJump}))
		c.insts[split].Y = c.pc()
	}
	end := c.pc()
	for _, j := range jumps {
		c.insts[j].X = end
	}
	return nil
}

// star compiles sub*:
//
//	L1: split body, exit   (greedy; lazy swaps targets)
//	body: <sub>
//	      jump L1
//	exit:
func (c *compiler) star(sub *syntax.Node, lazy bool) error {
	split := c.emit(Inst{Op: OpSplit})
	body := c.pc()
	if err := c.node(sub); err != nil {
		return err
	}
	c.emit(Inst{Op: OpJump, X: split})
	exit := c.pc()
	if lazy {
		c.insts[split].X, c.insts[split].Y = exit, body
	} else {
		c.insts[split].X, c.insts[split].Y = body, exit
	}
	return nil
}

// plus compiles sub+: the body runs once, then a split loops back.
func (c *compiler) plus(sub *syntax.Node, lazy bool) error {
	body := c.pc()
	if err := c.node(sub); err != nil {
		return err
	}
	split := c.emit(Inst{Op: OpSplit})
	exit := c.pc()
	if lazy {
		c.insts[split].X, c.insts[split].Y = exit, body
	} else {
		c.insts[split].X, c.insts[split].Y = body, exit
	}
	return nil
}

// quest compiles sub?.
func (c *compiler) quest(sub *syntax.Node, lazy bool) error {
	split := c.emit(Inst{Op: OpSplit})
	body := c.pc()
	if err := c.node(sub); err != nil {
		return err
	}
	exit := c.pc()
	if lazy {
		c.insts[split].X, c.insts[split].Y = exit, body
	} else {
		c.insts[split].X, c.insts[split].Y = body, exit
	}
	return nil
}

// repeat compiles sub{m,n} by unrolling: m mandatory copies, then
// either a trailing star (n unbounded) or n-m optional copies whose
// splits all exit to the common end.
func (c *compiler) repeat(n *syntax.Node) error {
	sub := n.Sub[0]
	lazy := c.lazy(n)
	for i := 0; i < n.Min; i++ {
		if err := c.node(sub); err != nil {
			return err
		}
	}
	if n.Max == -1 {
		return c.star(sub, lazy)
	}
	var splits []int
	for i := 0; i < n.Max-n.Min; i++ {
		splits = append(splits, c.emit(Inst{Op: OpSplit}))
		if err := c.node(sub); err != nil {
			return err
		}
	}
	end := c.pc()
	for _, s := range splits {
		if lazy {
			c.insts[s].X, c.insts[s].Y = end, s+1
		} else {
			c.insts[s].X, c.insts[s].Y = s+1, end
		}
	}
	return nil
}
