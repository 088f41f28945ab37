package vm

// DefaultMaxSteps is the per-attempt instruction execution budget.
// Exhausting it abandons the attempt as a non-match for that start
// offset; it is a resource policy, never an error.
const DefaultMaxSteps = 1_000_000

// maxVisitedBits caps the visited bitmap at 256KB. Inputs too large
// for the bitmap run without revisit pruning and rely on the step
// budget alone.
const maxVisitedBits = 256 * 1024 * 8

// Backtracker executes a Program against subject bytes.
//
// It is a true backtracking machine: OpSplit tries its first target
// and only when the entire continuation fails resumes at the second.
// Instead of native recursion the machine keeps an explicit frame
// stack holding split alternatives and capture-slot undo records, so
// backtracking order matches the recursive formulation exactly.
//
// A bit vector of visited (pc, offset) pairs prunes re-exploration:
// whether a match is reachable from a configuration depends only on
// the program counter and the input offset, so a configuration that
// failed once can never succeed later in the same attempt. The
// pruning keeps pathological patterns polynomial without disturbing
// preference order.
//
// A Backtracker is single-use state; allocate one per goroutine. The
// Program it runs is immutable and may be shared.
type Backtracker struct {
	prog     *Program
	maxSteps int

	slots []int
	stack []frame

	// visited is a bit vector over (pc, offset) pairs, laid out as
	// pc*(inputLen+1) + offset.
	visited  []uint64
	inputLen int
	track    bool
}

// frame is one backtrack stack entry. slot == -1 marks a split
// alternative (resume at pc/sp); otherwise it is an undo record
// restoring slots[slot] = val.
type frame struct {
	pc, sp int
	slot   int
	val    int
}

// NewBacktracker creates a machine for prog. maxSteps <= 0 selects
// DefaultMaxSteps.
func NewBacktracker(prog *Program, maxSteps int) *Backtracker {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Backtracker{
		prog:     prog,
		maxSteps: maxSteps,
		slots:    make([]int, prog.NumSlots()),
		inputLen: -1,
	}
}

// Slots returns the capture slot array of the most recent successful
// attempt. Offsets come in (start, end) pairs per group; -1 means the
// slot was never written on the matching path.
func (b *Backtracker) Slots() []int {
	return b.slots
}

// Find runs a leftmost unanchored search, honoring FlagAnchored.
// It reports the start offset of the match.
func (b *Backtracker) Find(text []byte) (start int, ok bool) {
	if b.prog.flags&FlagAnchored != 0 {
		if b.FindAt(text, 0) {
			return 0, true
		}
		return -1, false
	}
	for at := 0; at <= len(text); at++ {
		if b.FindAt(text, at) {
			return at, true
		}
	}
	return -1, false
}

// FindAt runs a single anchored attempt starting at offset start.
// Capture slots are reset first, so groups on branches not traversed
// stay unset rather than carrying values from earlier attempts.
func (b *Backtracker) FindAt(text []byte, start int) bool {
	if start < 0 || start > len(text) {
		return false
	}
	b.reset(len(text))
	return b.run(text, start)
}

// reset prepares per-attempt state: slots to -1, stack emptied and
// the visited bitmap sized for the input and cleared.
func (b *Backtracker) reset(inputLen int) {
	for i := range b.slots {
		b.slots[i] = -1
	}
	b.stack = b.stack[:0]

	if inputLen != b.inputLen {
		b.inputLen = inputLen
		bits := b.prog.Len() * (inputLen + 1)
		if bits > maxVisitedBits {
			b.track = false
			b.visited = nil
			return
		}
		b.track = true
		words := (bits + 63) / 64
		if cap(b.visited) >= words {
			b.visited = b.visited[:words]
		} else {
			b.visited = make([]uint64, words)
			return
		}
	}
	for i := range b.visited {
		b.visited[i] = 0
	}
}

// shouldVisit marks (pc, sp) and reports whether it was unseen.
func (b *Backtracker) shouldVisit(pc, sp int) bool {
	if !b.track {
		return true
	}
	idx := pc*(b.inputLen+1) + sp
	word, bit := idx/64, uint64(1)<<(idx%64)
	if b.visited[word]&bit != 0 {
		return false
	}
	b.visited[word] |= bit
	return true
}

// run executes the program from offset start until OpMatch, stack
// exhaustion or budget exhaustion.
func (b *Backtracker) run(text []byte, start int) bool {
	flags := b.prog.flags
	icase := flags&FlagICase != 0
	dotall := flags&FlagDotAll != 0
	multiline := flags&FlagMultiline != 0

	pc, sp := 0, start
	steps := 0
	for {
		if steps >= b.maxSteps {
			return false
		}
		steps++

		ok := b.shouldVisit(pc, sp)
		if ok {
			in := &b.prog.insts[pc]
			switch in.Op {
			case OpChar:
				if sp < len(text) && eqByte(text[sp], in.C, icase) {
					sp++
					pc++
				} else {
					ok = false
				}
			case OpClass:
				if sp < len(text) && in.Class.Matches(text[sp], icase) {
					sp++
					pc++
				} else {
					ok = false
				}
			case OpAny:
				if sp < len(text) && (dotall || text[sp] != '\n') {
					sp++
					pc++
				} else {
					ok = false
				}
			case OpJump:
				pc = in.X
			case OpSplit:
				b.stack = append(b.stack, frame{pc: in.Y, sp: sp, slot: -1})
				pc = in.X
			case OpSave:
				b.stack = append(b.stack, frame{slot: in.X, val: b.slots[in.X]})
				b.slots[in.X] = sp
				pc++
			case OpAssertBegin:
				if sp == 0 || (multiline && text[sp-1] == '\n') {
					pc++
				} else {
					ok = false
				}
			case OpAssertEnd:
				if sp == len(text) || (multiline && text[sp] == '\n') {
					pc++
				} else {
					ok = false
				}
			case OpMatch:
				return true
			}
		}
		if ok {
			continue
		}
		// Backtrack: unwind undo records until a split alternative.
		for {
			n := len(b.stack)
			if n == 0 {
				return false
			}
			f := b.stack[n-1]
			b.stack = b.stack[:n-1]
			if f.slot >= 0 {
				b.slots[f.slot] = f.val
				continue
			}
			pc, sp = f.pc, f.sp
			break
		}
	}
}

func eqByte(a, c byte, icase bool) bool {
	if a == c {
		return true
	}
	if !icase {
		return false
	}
	return lowerASCII(a) == lowerASCII(c)
}

func lowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
