package core

import "math/rand"

// Rand is the random source shared by the generator and the spawn phase.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a seeded source. Equal seeds give equal boards and spawns.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}
