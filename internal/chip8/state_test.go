package chip8

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func TestPushPopRoundTrip(t *testing.T) {
	st := NewState(nil, 1)
	if err := st.Push(0x300); err != nil {
		t.Fatalf("Push: %v", err)
	}
	addr, err := st.Pop()
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if addr != 0x300 {
		t.Fatalf("Pop() = %#x, want 0x300", addr)
	}
}

func TestStackOverflow(t *testing.T) {
	st := NewState(nil, 1)
	for i := 0; i < StackDepthLimit; i++ {
		if err := st.Push(uint16(0x200 + i*2)); err != nil {
			t.Fatalf("Push %d: %v", i, err)
		}
	}
	if err := st.Push(0x300); err == nil {
		t.Fatalf("Push past limit: got nil error, want StackOverflowError\nstate: %s", spew.Sdump(st))
	}
}

func TestStackUnderflow(t *testing.T) {
	st := NewState(nil, 1)
	if _, err := st.Pop(); err == nil {
		t.Fatal("Pop on empty stack: got nil error, want StackUnderflowError")
	}
}

func TestFontLoadedAtReset(t *testing.T) {
	st := NewState(nil, 1)
	for i, b := range Font {
		if st.Memory[i] != b {
			t.Fatalf("memory[%d] = %#x, want font byte %#x", i, st.Memory[i], b)
		}
	}
}

func TestROMLoadedAtBase(t *testing.T) {
	rom := []byte{0x12, 0x00, 0xFF}
	st := NewState(rom, 1)
	for i, b := range rom {
		if st.Memory[ROMBase+i] != b {
			t.Fatalf("memory[0x200+%d] = %#x, want %#x", i, st.Memory[ROMBase+i], b)
		}
	}
}

func TestClearZeroesFrameBuffer(t *testing.T) {
	st := NewState(nil, 1)
	st.SetPixel(0, 0)
	st.SetPixel(63, 31)
	st.Clear()
	for i, row := range st.FrameBuffer {
		if row != 0 {
			t.Fatalf("row %d = %#x after Clear, want 0", i, row)
		}
	}
}

func TestSetPixelWraps(t *testing.T) {
	st := NewState(nil, 1)
	// x=64 wraps to column 0, y=32 wraps to row 0.
	st.SetPixel(64, 32)
	if st.FrameBuffer[0]&(1<<63) == 0 {
		t.Fatalf("expected column 0, row 0 set after wrap, frame[0]=%#016x", st.FrameBuffer[0])
	}
}
