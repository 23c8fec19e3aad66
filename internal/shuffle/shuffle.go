// Package shuffle produces reproducible permutations for quiz rounds.
package shuffle

import "math/rand/v2"

// mulberry32 is a small 32-bit generator; sequences match for equal seeds.
type mulberry32 struct {
	state uint32
}

// next returns a float in [0, 1).
func (m *mulberry32) next() float64 {
	m.state += 0x6d2b79f5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296
}

// Permute returns a permutation of [0, length) determined entirely by seed.
// The same (length, seed) pair always yields the same slice.
func Permute(length int, seed uint32) []int {
	if length <= 0 {
		return []int{}
	}

	order := make([]int, length)
	for i := range order {
		order[i] = i
	}

	rng := &mulberry32{state: seed}
	for i := length - 1; i > 0; i-- {
		j := int(rng.next() * float64(i+1))
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// NewSeed returns a fresh random seed for a new shuffle.
func NewSeed() uint32 {
	return rand.Uint32()
}
