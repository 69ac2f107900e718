package chip8

// Interpreter is the fetch-decode-execute engine of spec.md §4.5.
// Dispatch is nominally a flat table of 16 handlers with secondary
// tables for 0x0/0x8/0xE/0xF, per the design-level prescription in
// §4.5; Decode/classify (decode.go) already perform that
// table-of-tables classification, so Step here is the "dispatch"
// itself: one Decode + one Exec call, both reused by every backend.
//
// Grounded on the teacher's VM.parseOpcode switch in chip8.go,
// restructured into the decoder/executor split spec.md's component
// boundaries require.
type Interpreter struct {
	st    *State
	iface *Interface
}

// NewInterpreter builds an interpreter driving st through iface.
func NewInterpreter(st *State, iface *Interface) *Interpreter {
	return &Interpreter{st: st, iface: iface}
}

// Step fetches, decodes and executes exactly one instruction,
// advances PC, increments the cycle counter, and reports any fatal
// error.
func (it *Interpreter) Step() error {
	word := it.st.FetchWord(it.st.PC)
	in := Decode(word)
	next, err := Exec(it.st, it.iface, in)
	if err != nil {
		return err
	}
	it.st.PC = next
	it.iface.IncrementCycles(1)
	return nil
}
