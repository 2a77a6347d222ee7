package dungeon

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"
)

const (
	seedAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	seedLength   = 7
)

// PRNG is a deterministic integer stream seeded by a slug-style string.
// Every random decision in the pipeline routes through a single PRNG so
// that (seed, options) uniquely determines the generated dungeon.
type PRNG struct {
	seed string
	rng  *rand.Rand
}

// NewPRNG creates a PRNG for the given seed string. An empty seed is
// replaced with a generated slug; Seed reports the value actually used.
func NewPRNG(seed string) *PRNG {
	if seed == "" {
		seed = generateSeed()
	}
	h := fnv.New64a()
	h.Write([]byte(seed))
	return &PRNG{
		seed: seed,
		rng:  rand.New(rand.NewSource(int64(h.Sum64()))),
	}
}

// Seed returns the seed string this PRNG was created with.
func (p *PRNG) Seed() string {
	return p.seed
}

// IntBetween returns a uniform random integer in [min, max] inclusive.
// It panics if max < min, which is a programming error on par with
// calling rand.Intn with a non-positive argument.
func (p *PRNG) IntBetween(min, max int) int {
	if max < min {
		panic(fmt.Sprintf("dungeon: IntBetween(%d, %d): max < min", min, max))
	}
	return min + p.rng.Intn(max-min+1)
}

// OneIn returns true with probability 1/n.
func (p *PRNG) OneIn(n int) bool {
	return p.IntBetween(1, n) == 1
}

// generateSeed produces a short lowercase alphanumeric slug. Only used
// when the caller supplied no seed, so reproducibility is not a concern.
func generateSeed() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, seedLength)
	for i := range b {
		b[i] = seedAlphabet[rng.Intn(len(seedAlphabet))]
	}
	return string(b)
}
