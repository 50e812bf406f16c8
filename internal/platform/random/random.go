package random

import "math/rand/v2"

// Source yields uniformly distributed integers in [0, n).
type Source interface {
	IntN(n int) int
}

// System draws from the runtime's auto-seeded generator.
type System struct{}

func (System) IntN(n int) int {
	return rand.IntN(n)
}

// NewSeeded returns a deterministic source for tests and replays.
func NewSeeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Perm returns a uniform random permutation of [0, n) using Fisher-Yates.
func Perm(src Source, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
