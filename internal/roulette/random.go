package roulette

import "math/rand"

// Random is implemented by *rand.Rand.
type Random interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// globalRandom uses the top-level math/rand functions, which are safe for concurrent use.
type globalRandom struct{}

func (globalRandom) Intn(n int) int                     { return rand.Intn(n) }
func (globalRandom) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }
