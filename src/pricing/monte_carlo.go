package pricing

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/jiaming2012/european-pricer/src/eventmodels"
)

// gbmPath holds the per-step constants of a risk neutral geometric Brownian motion. Workers
// only read it.
type gbmPath struct {
	spot       float64
	strike     float64
	optionType eventmodels.OptionType
	steps      int
	drift      float64
	diffusion  float64
}

func newGBMPath(contract *eventmodels.EuropeanOptionContract, steps int) gbmPath {
	dt := contract.Maturity() / float64(steps)
	vol := contract.Volatility()

	return gbmPath{
		spot:       contract.SpotPrice(),
		strike:     contract.StrikePrice(),
		optionType: contract.OptionType(),
		steps:      steps,
		drift:      (contract.RiskFreeRate() - 0.5*vol*vol) * dt,
		diffusion:  vol * math.Sqrt(dt),
	}
}

func (p gbmPath) terminalPrice(sampler *GaussianSampler) float64 {
	if p.steps == 1 {
		return p.spot * math.Exp(p.drift+p.diffusion*sampler.Next())
	}

	logReturn := 0.0
	for i := 0; i < p.steps; i++ {
		logReturn += p.drift + p.diffusion*sampler.Next()
	}

	return p.spot * math.Exp(logReturn)
}

func (p gbmPath) payoff(terminalPrice float64) float64 {
	if p.optionType == eventmodels.OptionTypePut {
		return math.Max(p.strike-terminalPrice, 0)
	}

	return math.Max(terminalPrice-p.strike, 0)
}

// payoffStats is a Welford accumulator of payoffs: count, running mean and the sum of squared
// deviations from it.
type payoffStats struct {
	n    int
	mean float64
	m2   float64
}

func (s *payoffStats) add(x float64) {
	s.n++
	delta := x - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (x - s.mean)
}

// merge folds other into s with the pairwise update of Chan, Golub and LeVeque.
func (s *payoffStats) merge(other payoffStats) {
	if other.n == 0 {
		return
	}

	if s.n == 0 {
		*s = other
		return
	}

	n := s.n + other.n
	delta := other.mean - s.mean
	s.mean += delta * float64(other.n) / float64(n)
	s.m2 += other.m2 + delta*delta*float64(s.n)*float64(other.n)/float64(n)
	s.n = n
}

// sampleVariance is zero for fewer than two payoffs.
func (s payoffStats) sampleVariance() float64 {
	if s.n < 2 {
		return 0
	}

	return s.m2 / float64(s.n-1)
}

func simulatePaths(path gbmPath, numPaths int, seed uint64) payoffStats {
	sampler := NewGaussianSampler(seed)

	var out payoffStats
	for i := 0; i < numPaths; i++ {
		out.add(path.payoff(path.terminalPrice(sampler)))
	}

	return out
}

// MonteCarloPrice estimates the discounted expected payoff of the contract from numPaths
// independent terminal prices, spread over runtime.GOMAXPROCS(0) workers.
func MonteCarloPrice(contract *eventmodels.EuropeanOptionContract, numPaths int) (float64, error) {
	estimate, err := SimulateMonteCarlo(contract, eventmodels.MonteCarloParams{NumPaths: numPaths})
	if err != nil {
		return 0, err
	}

	return estimate.Price, nil
}

// SimulateMonteCarlo runs the simulation described by params and reports the estimate with its
// standard error.
//
// Paths are divided into contiguous blocks, one per worker, and every worker draws from its own
// generator seeded from a sequence derived from params.Seed. Partial statistics are merged in
// worker order, so a run is reproducible only for the same seed, worker count and step count.
// Changing the worker count changes the streams and yields a statistically equivalent, not
// identical, estimate.
func SimulateMonteCarlo(contract *eventmodels.EuropeanOptionContract, params eventmodels.MonteCarloParams) (eventmodels.MonteCarloEstimate, error) {
	if contract == nil {
		return eventmodels.MonteCarloEstimate{}, fmt.Errorf("SimulateMonteCarlo: missing contract: %w", eventmodels.InvalidContractErr)
	}

	if err := params.Validate(); err != nil {
		return eventmodels.MonteCarloEstimate{}, fmt.Errorf("SimulateMonteCarlo: %w", err)
	}

	numPaths := params.NumPaths

	workers := params.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > numPaths {
		workers = numPaths
	}

	steps := params.Steps
	if steps == 0 {
		steps = 1
	}

	var masterSeed uint64
	if params.Seed != nil {
		masterSeed = *params.Seed
	} else {
		masterSeed = uint64(time.Now().UnixNano())
	}

	path := newGBMPath(contract, steps)
	seeds := workerSeeds(masterSeed, workers)
	partials := make([]payoffStats, workers)

	pathsPerWorker := numPaths / workers
	remainder := numPaths % workers

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		n := pathsPerWorker
		if i < remainder {
			n++
		}

		wg.Add(1)
		go func(workerID, n int) {
			defer wg.Done()
			partials[workerID] = simulatePaths(path, n, seeds[workerID])
		}(i, n)
	}

	wg.Wait()

	var total payoffStats
	for _, p := range partials {
		total.merge(p)
	}

	discount := contract.DiscountFactor()

	standardError := 0.0
	if variance := total.sampleVariance(); variance > 0 {
		standardError = discount * math.Sqrt(variance/float64(total.n))
	}

	return eventmodels.MonteCarloEstimate{
		Price:         discount * total.mean,
		StandardError: standardError,
		NumPaths:      numPaths,
		Workers:       workers,
		Steps:         steps,
		Seed:          masterSeed,
	}, nil
}
