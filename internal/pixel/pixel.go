// Package pixel is the frontend window: a faiface/pixel rendering
// surface over a chip8.Interface. It never sees guest memory, a ROM,
// or a VM -- only the Interface's frame buffer, keypad and stop flag
// (spec.md §1: the rendering surface is an external collaborator;
// §4.3 pins exactly the interface it consumes).
//
// Grounded on the teacher's internal/pixel/pixel.go. The font table
// moved to internal/chip8/font.go since it's guest memory content, not
// a rendering concern; everything else here is the teacher's window
// and key-repeat logic, adapted to read/write a chip8.Interface
// instead of sharing a *VM directly.
package pixel

import (
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"
	"github.com/pkg/errors"

	"github.com/bradford-hamilton/chip8vm/internal/chip8"
)

const (
	guestWidth  float64 = 64
	guestHeight float64 = 32
	screenWidth  float64 = 1024
	screenHeight float64 = 768

	// keyRepeatDur matches the teacher's auto-repeat-while-held
	// interval for a physically held key.
	keyRepeatDur = time.Second / 5
)

// Window embeds a pixelgl window, holds a keymapping of CHIP-8 hex
// index -> pixelgl.Button, and an array of tickers for auto-repeating
// a held key into the Interface.
type Window struct {
	*pixelgl.Window
	KeyMap   map[uint8]pixelgl.Button
	KeysDown [16]*time.Ticker
}

// NewWindow creates a new pixelgl window config, initializes the
// window, and returns a Window with the teacher's CHIP-8 keymap.
func NewWindow() (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  "chippy",
		Bounds: pixel.R(0, 0, screenWidth, screenHeight),
		VSync:  true,
	}
	w, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "creating new window")
	}
	km := map[uint8]pixelgl.Button{
		0x1: pixelgl.Key1, 0x2: pixelgl.Key2,
		0x3: pixelgl.Key3, 0xC: pixelgl.Key4,
		0x4: pixelgl.KeyQ, 0x5: pixelgl.KeyW,
		0x6: pixelgl.KeyE, 0xD: pixelgl.KeyR,
		0x7: pixelgl.KeyA, 0x8: pixelgl.KeyS,
		0x9: pixelgl.KeyD, 0xE: pixelgl.KeyF,
		0xA: pixelgl.KeyZ, 0x0: pixelgl.KeyX,
		0xB: pixelgl.KeyC, 0xF: pixelgl.KeyV,
	}
	return &Window{
		Window:   w,
		KeyMap:   km,
		KeysDown: [16]*time.Ticker{},
	}, nil
}

// DrawGraphics clears the window and draws one filled rectangle per
// set bit of frame, which is the wire convention of spec.md §6: row 0
// on top, bit N of a row is column (63-N).
func (w *Window) DrawGraphics(frame [32]uint64) {
	w.Clear(colornames.Black)
	imDraw := imdraw.New(nil)
	imDraw.Color = pixel.RGB(1, 1, 1)
	cellW, cellH := screenWidth/guestWidth, screenHeight/guestHeight

	for row := 0; row < 32; row++ {
		for col := 0; col < 64; col++ {
			bit := uint64(1) << uint(63-col)
			if frame[row]&bit == 0 {
				continue
			}
			// window-space y grows upward; guest row 0 is the top.
			y := 31 - row
			imDraw.Push(pixel.V(cellW*float64(col), cellH*float64(y)))
			imDraw.Push(pixel.V(cellW*float64(col)+cellW, cellH*float64(y)+cellH))
			imDraw.Rectangle(0)
		}
	}

	imDraw.Draw(w)
	w.Update()
}

// HandleKeyInput mirrors held keys and their auto-repeat into iface's
// keypad bitmap. Called once per frontend tick.
func (w *Window) HandleKeyInput(iface *chip8.Interface) {
	for i, key := range w.KeyMap {
		switch {
		case w.JustReleased(key):
			if w.KeysDown[i] != nil {
				w.KeysDown[i].Stop()
				w.KeysDown[i] = nil
			}
			iface.SetKey(i, false)
		case w.JustPressed(key):
			if w.KeysDown[i] == nil {
				w.KeysDown[i] = time.NewTicker(keyRepeatDur)
			}
			iface.SetKey(i, true)
		}

		if w.KeysDown[i] == nil {
			continue
		}
		select {
		case <-w.KeysDown[i].C:
			iface.SetKey(i, true)
		default:
		}
	}
}
