// Package romfile loads CHIP-8 ROM images from disk.
//
// Grounded on the teacher's VM.loadROM (internal/chip8/chip8.go in
// bradford-hamilton/chippy), promoted to its own package since ROM
// loading is an external collaborator in spec.md's terms (§1: "ROM
// loading ... external collaborators") rather than part of the
// execution engine itself.
package romfile

import (
	"os"

	"github.com/pkg/errors"
)

// Load reads the raw bytes of a ROM image at path. It does not
// validate length -- spec.md §6 assigns that check to the engine's
// Run operation, so the same MaxROMSize constant is the single source
// of truth regardless of how the bytes were obtained.
func Load(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "loading ROM %q", path)
	}
	return b, nil
}
