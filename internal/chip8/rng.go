package chip8

import "math/rand"

// rngState is the engine-local PRNG backing 0xCxkk RND. The teacher
// calls the global math/rand.Float32() directly, which can't be
// seeded per-VM and so can't satisfy spec.md's documented, seedable
// rng_state (needed for the cross-backend determinism property in
// §8: "given the same ... PRNG seed").
type rngState struct {
	r *rand.Rand
}

func newRNG(seed int64) *rngState {
	return &rngState{r: rand.New(rand.NewSource(seed))}
}

// next returns the next byte of PRNG output, masked by kk per 0xCxkk.
func (s *rngState) next(kk uint8) uint8 {
	return byte(s.r.Intn(256)) & kk
}
