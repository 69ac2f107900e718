package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bradford-hamilton/chip8vm/internal/audio"
	"github.com/bradford-hamilton/chip8vm/internal/chip8"
	"github.com/bradford-hamilton/chip8vm/internal/pixel"
	"github.com/bradford-hamilton/chip8vm/internal/romfile"
)

const refreshRate = 60

// backendFlag names the execution strategy requested on the command
// line; see SPEC_FULL.md §10 for why this flag exists where the
// teacher had none.
var backendFlag string

// runCmd runs the chippy virtual machine and waits for a shutdown signal to exit
var runCmd = &cobra.Command{
	Use:   "run `path/to/rom`",
	Short: "run the chippy emulator",
	Args:  cobra.MinimumNArgs(1),
	Run:   runChippy,
}

func init() {
	runCmd.Flags().StringVar(&backendFlag, "backend", "interpreter", "execution strategy: interpreter, dynarec, or aot")
}

func parseBackend(name string) (chip8.BackendKind, error) {
	switch chip8.BackendKind(name) {
	case chip8.BackendInterpreter, chip8.BackendDynarec, chip8.BackendAOT:
		return chip8.BackendKind(name), nil
	default:
		return "", fmt.Errorf("unknown --backend %q: want interpreter, dynarec, or aot", name)
	}
}

func runChippy(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		fmt.Println("The run command takes one argument: a `path/to/rom`")
		os.Exit(1)
	}
	pathToROM := args[0]

	kind, err := parseBackend(backendFlag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	rom, err := romfile.Load(pathToROM)
	if err != nil {
		fmt.Printf("\nerror loading ROM: %v\n", err)
		os.Exit(1)
	}

	engine, err := chip8.NewEngine(rom, kind, time.Now().UnixNano())
	if err != nil {
		fmt.Printf("\nerror creating a new chip-8 engine: %v\n", err)
		os.Exit(1)
	}

	win, err := pixel.NewWindow()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	go func() {
		if err := audio.Run(engine.Iface); err != nil {
			fmt.Printf("audio actor stopped: %v\n", err)
		}
	}()
	go engine.RunTimers()
	go engine.Run()

	ticker := time.NewTicker(time.Second / refreshRate)
	defer ticker.Stop()

	for range ticker.C {
		if win.Closed() {
			fmt.Println("exit signal detected, gracefully shutting down...")
			engine.Stop()
			break
		}

		engine.ConsumeFrameBuffer(win.DrawGraphics)
		win.UpdateInput()
		win.HandleKeyInput(engine.Iface)
	}

	if err := <-engine.Done(); err != nil {
		fmt.Printf("\nchip-8 engine stopped with error: %v\n", err)
		os.Exit(1)
	}
}
