// rand/rand.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rand

import (
	"github.com/MichaelTJones/pcg"
)

///////////////////////////////////////////////////////////////////////////
// Random numbers.

// Rand is a small deterministic PRNG; two Rands seeded with the same value
// produce the same sequence, which is what keeps traffic generation
// reproducible.
type Rand struct {
	r *pcg.PCG32
}

func Make() *Rand {
	return &Rand{r: pcg.NewPCG32()}
}

func MakeSeeded(s int64) *Rand {
	r := Make()
	r.Seed(s)
	return r
}

func (r *Rand) Seed(s int64) {
	r.r.Seed(uint64(s), 0xda3e39cb94b95bdb)
}

func (r *Rand) Intn(n int) int {
	return int(r.r.Bounded(uint32(n)))
}

// Float32 returns a value in [0,1].
func (r *Rand) Float32() float32 {
	return float32(r.r.Random()) / (1<<32 - 1)
}

func (r *Rand) Uint32() uint32 {
	return r.r.Random()
}

// SampleWeighted randomly samples an element from the given slice with the
// probability of choosing each element proportional to the value returned
// by the provided callback. false is returned if all weights are zero.
func SampleWeighted[T any](r *Rand, slice []T, weight func(T) int) (T, bool) {
	// Weighted reservoir sampling...
	var result T
	ok := false
	sumWt := 0
	for _, v := range slice {
		w := weight(v)
		if w <= 0 {
			continue
		}

		sumWt += w
		if !ok || r.Float32() < float32(w)/float32(sumWt) {
			result, ok = v, true
		}
	}
	return result, ok
}
