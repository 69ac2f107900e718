package chip8

import (
	"sync"
	"sync/atomic"
)

// Interface is the sole shared surface between the engine thread, the
// timer actor and the frontend (spec.md §4.3). No teacher file has a
// direct equivalent -- chippy hands its *VM straight to the window and
// relies on the 60 Hz ticker to keep them roughly in step. This is
// built from the spec's contract instead, the way IntuitionEngine's
// runtime_ipc.go mediates between its CPU core and its video backend:
// a small struct of atomics plus a mutex-guarded buffer, not a direct
// reference to engine-owned state.
type Interface struct {
	frameMu   sync.Mutex
	frame     [32]uint64
	sendFrame atomic.Bool // true: slot empty, ready for the next publish

	keys [16]atomic.Bool

	delayTimer atomic.Uint32
	soundTimer atomic.Uint32

	cycleCount atomic.Uint64

	stopFlag atomic.Bool

	// beepRequests is written by the timer actor on the sound timer's
	// 1->0 edge and drained by the audio actor (internal/audio).
	beepRequests chan struct{}
}

// NewInterface returns a ready-to-publish Interface: the frame slot
// starts empty (consumed) so the engine's first frame is never
// dropped.
func NewInterface() *Interface {
	iface := &Interface{
		beepRequests: make(chan struct{}, 1),
	}
	iface.sendFrame.Store(true)
	return iface
}

// PublishFrame is called by the engine after any operation that
// mutates the frame buffer (CLS, DRW). It publishes fb unless the
// previous frame hasn't been consumed yet, in which case it drops the
// intermediate frame -- spec.md §4.3's single-slot, drop-if-full
// handshake ("the engine does NOT publish if the previous frame has
// not yet been consumed: it drops the intermediate frame").
func (iface *Interface) PublishFrame(fb *[32]uint64) {
	iface.frameMu.Lock()
	defer iface.frameMu.Unlock()
	if !iface.sendFrame.CompareAndSwap(true, false) {
		return
	}
	iface.frame = *fb
}

// ConsumeFrameBuffer invokes cb with a const view of the latest
// published frame if one is pending, then marks the slot ready for
// the next publish. cb is not invoked if no fresh frame is pending.
func (iface *Interface) ConsumeFrameBuffer(cb func(frame [32]uint64)) {
	if iface.sendFrame.Load() {
		return
	}
	iface.frameMu.Lock()
	frame := iface.frame
	iface.frameMu.Unlock()
	cb(frame)
	iface.sendFrame.Store(true)
}

// SetKey writes one keypad bit. Called by the frontend on key
// down/up.
func (iface *Interface) SetKey(index uint8, pressed bool) {
	if index >= 16 {
		return
	}
	iface.keys[index].Store(pressed)
}

// KeyPressed is read by the engine from SKP/SKNP/LD Vx,K.
func (iface *Interface) KeyPressed(index uint8) bool {
	if index >= 16 {
		return false
	}
	return iface.keys[index].Load()
}

// AnyKeyPressed returns the lowest-indexed pressed key and true, or
// (0, false) if none are down -- the busy-poll condition for
// 0xFx0A LD Vx,K (spec.md §4.4).
func (iface *Interface) AnyKeyPressed() (uint8, bool) {
	for i := uint8(0); i < 16; i++ {
		if iface.keys[i].Load() {
			return i, true
		}
	}
	return 0, false
}

// DelayTimer / SoundTimer: read by the engine (LD Vx,DT) and
// decremented by the timer actor at 60 Hz.
func (iface *Interface) DelayTimer() uint8     { return uint8(iface.delayTimer.Load()) }
func (iface *Interface) SetDelayTimer(v uint8) { iface.delayTimer.Store(uint32(v)) }
func (iface *Interface) SoundTimer() uint8     { return uint8(iface.soundTimer.Load()) }
func (iface *Interface) SetSoundTimer(v uint8) { iface.soundTimer.Store(uint32(v)) }

// tickTimers decrements both timers toward zero, run by the timer
// actor once per 1/60s, and returns whether the sound timer's 1->0
// beep edge occurred this tick.
func (iface *Interface) tickTimers() (beepEdge bool) {
	if d := iface.delayTimer.Load(); d > 0 {
		iface.delayTimer.Store(d - 1)
	}
	if s := iface.soundTimer.Load(); s > 0 {
		if s == 1 {
			beepEdge = true
		}
		iface.soundTimer.Store(s - 1)
	}
	return beepEdge
}

// IncrementCycles is called by the interpreter's and dynarec's Step
// once per retired instruction, and by the AOT's Step with a batched
// count when a branch terminator retires.
func (iface *Interface) IncrementCycles(n uint64) {
	iface.cycleCount.Add(n)
}

// GetCycles returns cycles since the last call, zeroing the counter
// (spec.md §6's GetCycles contract).
func (iface *Interface) GetCycles() uint64 {
	return iface.cycleCount.Swap(0)
}

// Stop / StopRequested: set by the frontend on exit, polled by the
// engine and timer actors.
func (iface *Interface) Stop()               { iface.stopFlag.Store(true) }
func (iface *Interface) StopRequested() bool { return iface.stopFlag.Load() }

// BeepRequests exposes the channel the audio actor drains.
func (iface *Interface) BeepRequests() <-chan struct{} { return iface.beepRequests }

func (iface *Interface) requestBeep() {
	select {
	case iface.beepRequests <- struct{}{}:
	default:
		// a beep is already pending consumption; drop, same
		// single-slot policy as the frame handshake.
	}
}
