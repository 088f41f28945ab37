// Package vm implements the bytecode program and the bounded
// backtracking machine that executes it.
//
// A pattern AST (package syntax) is compiled into a flat instruction
// slice; slice indices double as jump targets. The Backtracker runs a
// program against subject bytes with an explicit backtrack stack, a
// visited (pc, offset) bitmap and a per-attempt step budget.
package vm

import (
	"fmt"
	"strings"

	"github.com/fossillogic/rex/syntax"
)

// Flags is the resolved option bitmask shared by the compiler and the
// machine.
type Flags uint8

const (
	// FlagICase enables ASCII case-insensitive byte comparisons.
	FlagICase Flags = 1 << iota

	// FlagMultiline makes ^ and $ also match around '\n'.
	FlagMultiline

	// FlagDotAll makes '.' match '\n' as well.
	FlagDotAll

	// FlagUngreedy flips the default quantifier preference to lazy.
	FlagUngreedy

	// FlagAnchored restricts search to offset 0.
	FlagAnchored
)

// Opcode identifies a bytecode instruction.
type Opcode uint8

const (
	// OpChar consumes one byte equal to Inst.C.
	OpChar Opcode = iota

	// OpClass consumes one byte accepted by Inst.Class.
	OpClass

	// OpAny consumes any byte ('\n' only under FlagDotAll).
	OpAny

	// OpJump transfers control to Inst.X.
	OpJump

	// OpSplit tries Inst.X first; Inst.Y is the backtrack alternative.
	OpSplit

	// OpSave records the current offset into capture slot Inst.X.
	OpSave

	// OpAssertBegin matches at offset 0, or after '\n' under
	// FlagMultiline, without consuming.
	OpAssertBegin

	// OpAssertEnd matches at end of input, or before '\n' under
	// FlagMultiline, without consuming.
	OpAssertEnd

	// OpMatch ends a successful attempt.
	OpMatch
)

// String returns the opcode mnemonic.
func (op Opcode) String() string {
	switch op {
	case OpChar:
		return "char"
	case OpClass:
		return "class"
	case OpAny:
		return "any"
	case OpJump:
		return "jump"
	case OpSplit:
		return "split"
	case OpSave:
		return "save"
	case OpAssertBegin:
		return "assert-begin"
	case OpAssertEnd:
		return "assert-end"
	case OpMatch:
		return "match"
	}
	return fmt.Sprintf("unknown(%d)", op)
}

// Inst is a single instruction. Which operands are meaningful depends
// on Op: X/Y are program counters for OpJump/OpSplit, X is a slot
// index for OpSave, C is the literal for OpChar, Class the descriptor
// for OpClass.
type Inst struct {
	Op    Opcode
	X, Y  int
	C     byte
	Class *syntax.Class
}

// Program is a compiled pattern: the instruction slice, the capture
// slot count and the resolved options. Immutable after Compile, so a
// single Program may serve concurrent matches.
type Program struct {
	insts   []Inst
	numCaps int // capture groups including the whole match
	flags   Flags
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.insts)
}

// Inst returns the instruction at pc.
func (p *Program) Inst(pc int) Inst {
	return p.insts[pc]
}

// NumCaps returns the capture group count, including group 0 (the
// whole match). Fixed at compile time.
func (p *Program) NumCaps() int {
	return p.numCaps
}

// NumSlots returns the capture slot count (two per group).
func (p *Program) NumSlots() int {
	return 2 * p.numCaps
}

// Flags returns the resolved option bitmask.
func (p *Program) Flags() Flags {
	return p.flags
}

// Disassemble renders the program as one instruction per line, the
// form printed by "rex inspect".
func (p *Program) Disassemble() string {
	var sb strings.Builder
	for pc, in := range p.insts {
		fmt.Fprintf(&sb, "%04d  ", pc)
		switch in.Op {
		case OpChar:
			fmt.Fprintf(&sb, "char %q", in.C)
		case OpClass:
			sb.WriteString("class ")
			sb.WriteString(formatClass(in.Class))
		case OpJump:
			fmt.Fprintf(&sb, "jump -> %04d", in.X)
		case OpSplit:
			fmt.Fprintf(&sb, "split -> %04d, %04d", in.X, in.Y)
		case OpSave:
			fmt.Fprintf(&sb, "save %d", in.X)
		default:
			sb.WriteString(in.Op.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func formatClass(c *syntax.Class) string {
	var sb strings.Builder
	sb.WriteByte('[')
	if c.Negate {
		sb.WriteByte('^')
	}
	for _, r := range c.Ranges {
		if r.Lo == r.Hi {
			writeClassByte(&sb, r.Lo)
		} else {
			writeClassByte(&sb, r.Lo)
			sb.WriteByte('-')
			writeClassByte(&sb, r.Hi)
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

func writeClassByte(sb *strings.Builder, b byte) {
	if b >= 0x20 && b < 0x7f {
		sb.WriteByte(b)
		return
	}
	fmt.Fprintf(sb, `\x%02x`, b)
}
