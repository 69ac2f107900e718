package chip8

// aotRoutine is the "native routine" spec.md §4.7 describes: a unit
// of compiled code for one guest byte offset, pre-decoded at
// translation time so the driver never re-fetches or re-decodes the
// word at that address.
type aotRoutine func(a *AOT) (next uint16, isTerminator bool, err error)

// AOT is the ahead-of-time translator of spec.md §4.7. On ROM load it
// walks every even address in the ROM's range and builds one routine
// per address in a jump table spanning the full 4 KiB guest space;
// everything outside the emitted range is nil and fatal to reach.
//
// Go has neither a cross-function goto nor guaranteed tail-call
// elimination, so "threaded computed-goto dispatch" is modeled as an
// explicit trampoline: Step looks up table[PC] and runs it, and
// Engine.Run calls Step in a loop -- see SPEC_FULL.md §6 (4.7) for the
// rationale. CALL/RET go through ops.go's shared Exec: CALL pushes its
// own address and RET pops it and resumes 2 bytes past it, at the
// instruction after the call site; the AOT needs no separate "label after the call site"
// bookkeeping because the jump table already maps every guest address
// to its routine.
//
// Grounded on pot8o-chip's aot_ops.hpp (the jump-table-per-address
// design) and dynarec.h's function-pointer tables; no Go example repo
// in the pack implements an AOT backend.
type AOT struct {
	st    *State
	iface *Interface
	table [MemorySize]aotRoutine

	// straight accumulates instruction retirements since the last
	// branch terminator; only flushed into iface's cycle counter when
	// a terminator fires (spec.md §4.7's deferred-accounting trick).
	straight uint64
}

// NewAOT translates the whole ROM at [ROMBase, ROMBase+romLen) into a
// jump table and returns a ready-to-run AOT, or
// ErrAOTTranslationFailure if romLen runs past the guest address
// space.
func NewAOT(st *State, iface *Interface, romLen int) (*AOT, error) {
	if ROMBase+romLen > MemorySize {
		return nil, ErrAOTTranslationFailure
	}
	a := &AOT{st: st, iface: iface}
	addr := uint16(ROMBase)
	end := uint16(ROMBase + romLen)
	for addr < end {
		in := Decode(st.FetchWord(addr))
		a.table[addr] = makeRoutine(in)
		addr += 2
	}
	return a, nil
}

func makeRoutine(in Instruction) aotRoutine {
	term := in.IsBranchTerminator()
	return func(a *AOT) (uint16, bool, error) {
		next, err := Exec(a.st, a.iface, in)
		return next, term, err
	}
}

// Step runs the routine at the current PC through the trampoline and
// applies the deferred cycle accounting.
func (a *AOT) Step() error {
	pc := a.st.PC
	routine := a.table[pc]
	if routine == nil {
		return &AOTUnmappedJumpError{PC: pc}
	}
	next, isTerminator, err := routine(a)
	if err != nil {
		return err
	}
	a.st.PC = next

	if isTerminator {
		a.iface.IncrementCycles(a.straight + 1)
		a.straight = 0
	} else {
		a.straight++
	}
	return nil
}
