package main

import (
	"github.com/faiface/pixel/pixelgl"

	"github.com/bradford-hamilton/chip8vm/cmd"
)

func main() {
	// pixelgl needs access to the main thread, so cmd.Execute (which may
	// open a window via the `run` subcommand) runs inside pixelgl.Run.
	pixelgl.Run(cmd.Execute)
}
