package pricing

import (
	"golang.org/x/exp/rand"
)

// GaussianSampler draws standard normal variates from a generator it owns exclusively.
// A sampler is not safe for concurrent use: give each goroutine its own.
type GaussianSampler struct {
	rng *rand.Rand
}

func (s *GaussianSampler) Next() float64 {
	return s.rng.NormFloat64()
}

func NewGaussianSampler(seed uint64) *GaussianSampler {
	return &GaussianSampler{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// workerSeeds expands a master seed into n per-worker seeds. Each seed starts its own PCG
// stream, so the workers share no generator state.
func workerSeeds(masterSeed uint64, n int) []uint64 {
	seq := rand.New(rand.NewSource(masterSeed))

	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = seq.Uint64()
	}

	return seeds
}
