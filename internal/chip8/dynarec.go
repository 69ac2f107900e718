package chip8

// maxBlockLen bounds how many instructions a single translation will
// chase before forcing a terminator, so a ROM that never branches
// can't grow one block across the whole address space.
const maxBlockLen = 256

// block is a translated basic block: an ordered run of already-decoded
// instructions starting at PC and ending at the first branch
// terminator (inclusive), per spec.md §4.6.
type block struct {
	start uint16
	end   uint16 // exclusive: address immediately after the last instruction
	steps []Instruction
}

// Dynarec is the basic-block-cache engine of spec.md §4.6. It shares
// State/Interface with the interpreter -- only dispatch changes -- and
// reuses the same Exec function per step, which is what keeps its
// traces identical to the interpreter's and the AOT's (spec.md §8).
//
// Grounded on pot8o-chip's dynarec.h/dynarec.cpp: a code_cache keyed
// by PC holding a vector of std::function steps, exactly the
// map[uint16]*block of compiled Instructions here. No Go example repo
// in the pack implements a dynarec, so this is translated from the
// C++ design rather than adapted from a Go teacher file.
type Dynarec struct {
	st    *State
	iface *Interface
	cache map[uint16]*block
}

// NewDynarec builds a dynarec driving st through iface with an empty
// block cache.
func NewDynarec(st *State, iface *Interface) *Dynarec {
	return &Dynarec{st: st, iface: iface, cache: make(map[uint16]*block)}
}

// Step executes the block starting at the current PC, translating and
// caching it on a miss, and returns after the block's terminator (or
// after maxBlockLen straight-line instructions).
func (d *Dynarec) Step() error {
	pc := d.st.PC
	b, ok := d.cache[pc]
	if !ok {
		b = d.translate(pc)
		d.cache[pc] = b
	}

	flush := false
	for _, in := range b.steps {
		next, err := Exec(d.st, d.iface, in)
		if err != nil {
			return err
		}
		d.st.PC = next
		d.iface.IncrementCycles(1)

		if writeStart, writeEnd, wrote := writeRange(in, d.st); wrote {
			if d.overlapsAnyBlock(writeStart, writeEnd) {
				flush = true
			}
		}
		if in.IsBranchTerminator() {
			break
		}
	}

	if flush {
		d.invalidateAll()
	}
	return nil
}

// translate decodes instructions starting at pc until a branch
// terminator (inclusive) or maxBlockLen is reached, without executing
// them.
func (d *Dynarec) translate(pc uint16) *block {
	b := &block{start: pc}
	addr := pc
	for i := 0; i < maxBlockLen; i++ {
		word := d.st.FetchWord(addr)
		in := Decode(word)
		b.steps = append(b.steps, in)
		addr += 2
		if in.IsBranchTerminator() {
			break
		}
	}
	b.end = addr
	return b
}

// writeRange reports the memory range [start, end) in written by an
// instruction that can clobber already-translated code: the only two
// operations that write memory (spec.md §4.6: "LD [I],Vx or LD B,Vx").
func writeRange(in Instruction, st *State) (start, end uint16, wrote bool) {
	switch in.Kind {
	case OpLD_I_VX:
		return st.I, st.I + uint16(in.X) + 1, true
	case OpLD_B_VX:
		return st.I, st.I + 3, true
	default:
		return 0, 0, false
	}
}

func (d *Dynarec) overlapsAnyBlock(start, end uint16) bool {
	for _, b := range d.cache {
		if start < b.end && b.start < end {
			return true
		}
	}
	return false
}

// invalidateAll flushes the entire cache: the conservative
// self-modifying-code policy spec.md §4.6 prescribes.
func (d *Dynarec) invalidateAll() {
	d.cache = make(map[uint16]*block)
}
