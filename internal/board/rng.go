package board

import (
	"math/rand/v2"
	"time"
)

// Rand is the random source shared by spawning and shuffling.
type Rand interface {
	// IntN returns a uniform value in [0, n). n must be positive.
	IntN(n int) int
}

// NewRand returns a PCG generator seeded from a single 64-bit value.
// Seed 0 draws a seed from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	x := seed ^ 0x9e3779b97f4a7c15
	hi := splitmix64(x)
	lo := splitmix64(x ^ 0xDA942042E4DD58B5)
	return rand.New(rand.NewPCG(hi, lo))
}

// splitmix64 spreads a seed over the full 64-bit state space.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
