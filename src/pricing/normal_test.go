package pricing

import (
	"math"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalCDF(t *testing.T) {
	t.Run("known values", func(t *testing.T) {
		assert.Equal(t, 0.5, NormalCDF(0))
		assert.InDelta(t, 0.9750021048517795, NormalCDF(1.96), 1e-12)
		assert.InDelta(t, 0.15865525393145707, NormalCDF(-1), 1e-12)
		assert.InDelta(t, 0.8413447460685429, NormalCDF(1), 1e-12)
	})

	t.Run("infinities", func(t *testing.T) {
		assert.Equal(t, 0.0, NormalCDF(math.Inf(-1)))
		assert.Equal(t, 1.0, NormalCDF(math.Inf(1)))
	})

	t.Run("symmetric", func(t *testing.T) {
		for x := -6.0; x <= 6.0; x += 0.25 {
			assert.InDelta(t, 1.0, NormalCDF(x)+NormalCDF(-x), 1e-15)
		}
	})

	t.Run("monotone", func(t *testing.T) {
		prev := 0.0
		for x := -8.0; x <= 8.0; x += 0.01 {
			v := NormalCDF(x)
			assert.GreaterOrEqual(t, v, prev)
			prev = v
		}
	})
}

func TestNormalPDF(t *testing.T) {
	assert.InDelta(t, 1/math.Sqrt(2*math.Pi), NormalPDF(0), 1e-15)
	assert.InDelta(t, NormalPDF(1.3), NormalPDF(-1.3), 1e-15)
}

func TestGaussianSampler(t *testing.T) {
	t.Run("draws have zero mean and unit variance", func(t *testing.T) {
		sampler := NewGaussianSampler(7)

		draws := make([]float64, 100_000)
		for i := range draws {
			draws[i] = sampler.Next()
		}

		mean, err := stats.Mean(draws)
		require.NoError(t, err)
		assert.InDelta(t, 0, mean, 0.02)

		variance, err := stats.Variance(draws)
		require.NoError(t, err)
		assert.InDelta(t, 1, variance, 0.03)
	})

	t.Run("same seed gives the same stream", func(t *testing.T) {
		a := NewGaussianSampler(42)
		b := NewGaussianSampler(42)

		for i := 0; i < 1000; i++ {
			assert.Equal(t, a.Next(), b.Next())
		}
	})

	t.Run("different seeds give different streams", func(t *testing.T) {
		a := NewGaussianSampler(1)
		b := NewGaussianSampler(2)

		same := 0
		for i := 0; i < 1000; i++ {
			if a.Next() == b.Next() {
				same++
			}
		}

		assert.Less(t, same, 5)
	})

	t.Run("worker seeds are distinct and reproducible", func(t *testing.T) {
		seeds := workerSeeds(99, 64)
		assert.Equal(t, seeds, workerSeeds(99, 64))

		unique := map[uint64]struct{}{}
		for _, s := range seeds {
			unique[s] = struct{}{}
		}
		assert.Len(t, unique, 64)
	})
}
