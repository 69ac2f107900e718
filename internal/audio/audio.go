// Package audio plays a beep each time the engine's sound timer edges
// from 1 to 0, mirroring the teacher's VM.ManageAudio but driven by a
// chip8.Interface's beep-request channel instead of a direct
// audioChan field on the VM -- audio is an external collaborator
// (spec.md §1), not part of the execution engine.
package audio

import (
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"

	"github.com/bradford-hamilton/chip8vm/internal/chip8"
)

const beepAssetPath = "assets/beep.mp3"

// pollInterval bounds how long Run takes to notice iface's stop flag
// between beep requests.
const pollInterval = 50 * time.Millisecond

// Run decodes the beep asset, initializes the speaker, and plays it
// once per beep request until iface's stop flag is set. Intended to
// be launched with `go audio.Run(iface)` alongside engine.Run and
// engine.RunTimers. Grounded on the teacher's ManageAudio.
func Run(iface *chip8.Interface) error {
	f, err := os.Open(beepAssetPath)
	if err != nil {
		return errors.Wrap(err, "opening beep asset")
	}
	defer f.Close()

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		return errors.Wrap(err, "decoding beep asset")
	}
	defer streamer.Close()

	// Decode once into memory so every request plays from the start.
	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return errors.Wrap(err, "initializing speaker")
	}

	poll := time.NewTicker(pollInterval)
	defer poll.Stop()

	requests := iface.BeepRequests()
	for {
		select {
		case <-requests:
			speaker.Play(buffer.Streamer(0, buffer.Len()))
		case <-poll.C:
			if iface.StopRequested() {
				return nil
			}
		}
	}
}
