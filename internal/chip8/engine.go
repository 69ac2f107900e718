package chip8

import (
	"time"

	"github.com/pkg/errors"
)

// BackendKind selects which of the three execution strategies an
// Engine drives. This is spec.md §9's "polymorphic execution
// backend" promoted to an explicit, user-facing choice (see
// SPEC_FULL.md §10: the teacher's cobra CLI gains a --backend flag).
type BackendKind string

const (
	BackendInterpreter BackendKind = "interpreter"
	BackendDynarec     BackendKind = "dynarec"
	BackendAOT         BackendKind = "aot"
)

// Backend is the capability spec.md §9 asks for: {Run(ROM), Stop} plus
// the concrete state transitions of §4.4, here reduced to a single
// Step method since Run/Stop live on Engine and are identical across
// strategies -- only Step's dispatch style differs between
// Interpreter, Dynarec and AOT.
type Backend interface {
	Step() error
}

// Engine ties a Backend to its State and Interface and drives the
// engine-thread / timer-thread lifecycle of spec.md §5-§6.
//
// Grounded on the teacher's VM.Run/NewVM/ManageAudio lifecycle
// (chip8.go), split so any of the three backends can be dripped in
// behind the same Run/Stop/GetCycles/SetKey/ConsumeFrameBuffer
// surface.
type Engine struct {
	St      *State
	Iface   *Interface
	backend Backend
	done    chan error
}

// NewEngine validates rom's length, builds a fresh State and
// Interface, and selects the requested backend -- spec.md §6's
// Run(rom_bytes) operation, split into construction (here, so errors
// surface before any goroutine starts) and the blocking Run/RunTimers
// methods below.
func NewEngine(rom []byte, kind BackendKind, seed int64) (*Engine, error) {
	if len(rom) > MaxROMSize {
		return nil, ErrMalformedROM
	}
	st := NewState(rom, seed)
	iface := NewInterface()

	backend, err := newBackend(kind, st, iface, len(rom))
	if err != nil {
		return nil, errors.Wrap(err, "selecting backend")
	}

	return &Engine{
		St:      st,
		Iface:   iface,
		backend: backend,
		done:    make(chan error, 1),
	}, nil
}

func newBackend(kind BackendKind, st *State, iface *Interface, romLen int) (Backend, error) {
	switch kind {
	case BackendInterpreter, "":
		return NewInterpreter(st, iface), nil
	case BackendDynarec:
		return NewDynarec(st, iface), nil
	case BackendAOT:
		aot, err := NewAOT(st, iface, romLen)
		if err != nil {
			// Falls back to the interpreter per spec.md §7's
			// AOTTranslationFailure contract.
			return NewInterpreter(st, iface), nil
		}
		return aot, nil
	default:
		return nil, errors.Errorf("unknown backend %q", kind)
	}
}

// Run is the engine thread: step the backend until stop_flag is set
// or a fatal error occurs, then publish the terminal error (nil on a
// clean stop) to Done() exactly once. Intended to be launched with
// `go engine.Run()`, mirroring the teacher's `go vm.Run()`.
func (e *Engine) Run() {
	var runErr error
	for !e.Iface.StopRequested() {
		if err := e.backend.Step(); err != nil {
			runErr = err
			break
		}
	}
	e.Iface.Stop()
	e.done <- runErr
}

// RunTimers is the timer actor: decrement both timers at 60 Hz until
// stop_flag is set, requesting a beep on the sound timer's 1->0 edge.
// Intended to be launched with `go engine.RunTimers()`, mirroring the
// teacher's ticker-driven loop in VM.Run.
func (e *Engine) RunTimers() {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()
	for range ticker.C {
		if e.Iface.StopRequested() {
			return
		}
		if e.Iface.tickTimers() {
			e.Iface.requestBeep()
		}
	}
}

// Done returns a channel receiving the engine thread's terminal error
// (nil on a clean stop) exactly once.
func (e *Engine) Done() <-chan error { return e.done }

// Stop sets the stop flag; the engine and timer threads exit before
// their next instruction/tick (spec.md §5 cancellation).
func (e *Engine) Stop() { e.Iface.Stop() }

// GetCycles, SetKey and ConsumeFrameBuffer are spec.md §6's remaining
// lifecycle operations, delegated straight to the Interface.
func (e *Engine) GetCycles() uint64                      { return e.Iface.GetCycles() }
func (e *Engine) SetKey(index uint8, pressed bool)        { e.Iface.SetKey(index, pressed) }
func (e *Engine) ConsumeFrameBuffer(cb func([32]uint64))  { e.Iface.ConsumeFrameBuffer(cb) }

// BeepRequests exposes the Interface's beep channel to an audio actor.
func (e *Engine) BeepRequests() <-chan struct{} { return e.Iface.BeepRequests() }
