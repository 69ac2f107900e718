package chip8

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds per spec.md §7. Nothing is retried: every kind here is
// either rejected at load (MalformedROM) or fatal to the current run.
var (
	// ErrMalformedROM is returned at load time when a ROM exceeds the
	// 3584-byte guest address space reserved for program data.
	ErrMalformedROM = errors.New("malformed ROM")

	// ErrInvalidOpcode is fatal: the decoder classified a word as
	// undefined.
	ErrInvalidOpcode = errors.New("invalid opcode")

	// ErrStackOverflow is fatal: CALL beyond the 16-deep classic stack.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is fatal: RET with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrAOTTranslationFailure is AOT-only: code generation or load
	// error. NewEngine falls back to the interpreter when NewAOT
	// returns it; at run time, wrapped by AOTUnmappedJumpError, it is
	// fatal.
	ErrAOTTranslationFailure = errors.New("AOT translation failure")
)

// InvalidOpcodeError carries the offending word and PC, per spec.md §7.
type InvalidOpcodeError struct {
	Word uint16
	PC   uint16
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("invalid opcode %#04x at pc %#04x", e.Word, e.PC)
}

func (e *InvalidOpcodeError) Unwrap() error { return ErrInvalidOpcode }

// StackOverflowError carries the depth at the time of the failed CALL.
type StackOverflowError struct {
	Depth int
}

func (e *StackOverflowError) Error() string {
	return fmt.Sprintf("stack overflow: CALL at depth %d, already at limit %d", e.Depth, StackDepthLimit)
}

func (e *StackOverflowError) Unwrap() error { return ErrStackOverflow }

// StackUnderflowError carries the PC of the offending RET.
type StackUnderflowError struct {
	PC uint16
}

func (e *StackUnderflowError) Error() string {
	return fmt.Sprintf("stack underflow: RET at pc %#04x with empty stack", e.PC)
}

func (e *StackUnderflowError) Unwrap() error { return ErrStackUnderflow }

// AOTUnmappedJumpError is fatal: control reached a jump-table entry
// outside the translated ROM range (spec.md §4.7: "entries outside
// the emitted range are null and reaching them is fatal").
type AOTUnmappedJumpError struct {
	PC uint16
}

func (e *AOTUnmappedJumpError) Error() string {
	return fmt.Sprintf("AOT jump to unmapped address %#04x", e.PC)
}

func (e *AOTUnmappedJumpError) Unwrap() error { return ErrAOTTranslationFailure }
