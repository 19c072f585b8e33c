package eventmodels

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingRequestDTO(t *testing.T) {
	base := func() PricingRequestDTO {
		return PricingRequestDTO{
			SpotPrice:    100,
			StrikePrice:  100,
			RiskFreeRate: 0.05,
			Volatility:   0.2,
			Maturity:     1,
			OptionType:   "call",
		}
	}

	t.Run("defaults", func(t *testing.T) {
		dto := base()

		req, err := dto.ToModel()
		require.NoError(t, err)
		assert.Equal(t, DefaultNumPaths, req.MonteCarlo.NumPaths)
		assert.Equal(t, DefaultConvergenceTolerance, req.Tolerance)
		assert.Nil(t, req.MonteCarlo.Seed)
		assert.False(t, dto.IsReproducible())
	})

	t.Run("explicit zero paths fails", func(t *testing.T) {
		dto := base()
		zero := 0
		dto.NumPaths = &zero

		_, err := dto.ToModel()
		assert.ErrorIs(t, err, InvalidPathCountErr)
	})

	t.Run("invalid contract fails", func(t *testing.T) {
		dto := base()
		dto.StrikePrice = -1

		_, err := dto.ToModel()
		assert.ErrorIs(t, err, InvalidContractErr)
	})

	t.Run("cache key resolves defaults", func(t *testing.T) {
		implicit := base()

		explicit := base()
		paths := DefaultNumPaths
		tolerance := DefaultConvergenceTolerance
		explicit.NumPaths = &paths
		explicit.Tolerance = &tolerance
		explicit.OptionType = "CALL"

		assert.Equal(t, implicit.CacheKey(), explicit.CacheKey())

		seeded := base()
		seed := uint64(9)
		seeded.Seed = &seed
		assert.NotEqual(t, implicit.CacheKey(), seeded.CacheKey())
		assert.True(t, seeded.IsReproducible())
	})
}

func TestPricingConfigYAML(t *testing.T) {
	data := []byte(`
tolerance: 0.02
monteCarlo:
  numPaths: 250000
  workers: 4
  seed: 42
  steps: 1
contracts:
  - name: atm-call
    spotPrice: 100
    strikePrice: 100
    riskFreeRate: 0.05
    volatility: 0.2
    maturity: 1.0
    optionType: call
  - name: otm-put
    spotPrice: 100
    strikePrice: 90
    riskFreeRate: 0.05
    volatility: 0.25
    maturity: 0.5
    optionType: put
`)

	config, err := ParsePricingConfigYAML(data)
	require.NoError(t, err)

	t.Run("tolerance and monte carlo settings", func(t *testing.T) {
		assert.Equal(t, 0.02, config.GetTolerance())

		params := config.GetMonteCarloParams()
		assert.Equal(t, 250000, params.NumPaths)
		assert.Equal(t, 4, params.Workers)
		require.NotNil(t, params.Seed)
		assert.Equal(t, uint64(42), *params.Seed)
	})

	t.Run("GetContract", func(t *testing.T) {
		item, err := config.GetContract("OTM-PUT")
		require.NoError(t, err)

		contract, err := item.ToModel()
		require.NoError(t, err)
		assert.Equal(t, OptionTypePut, contract.OptionType())
		assert.Equal(t, 90.0, contract.StrikePrice())

		_, err = config.GetContract("missing")
		assert.Error(t, err)
	})

	t.Run("defaults when omitted", func(t *testing.T) {
		empty, err := ParsePricingConfigYAML([]byte("contracts: []\n"))
		require.NoError(t, err)

		assert.Equal(t, DefaultConvergenceTolerance, empty.GetTolerance())
		assert.Equal(t, DefaultNumPaths, empty.GetMonteCarloParams().NumPaths)
	})

	t.Run("ApplyTo fills unset fields", func(t *testing.T) {
		dto := PricingRequestDTO{Workers: 2}

		require.NoError(t, config.ApplyTo(&dto, "otm-put"))
		assert.Equal(t, 90.0, dto.StrikePrice)
		assert.Equal(t, "put", dto.OptionType)
		assert.Equal(t, 2, dto.Workers)
		require.NotNil(t, dto.NumPaths)
		assert.Equal(t, 250000, *dto.NumPaths)
		require.NotNil(t, dto.Tolerance)
		assert.Equal(t, 0.02, *dto.Tolerance)

		req, err := dto.ToModel()
		require.NoError(t, err)
		assert.Equal(t, OptionTypePut, req.Contract.OptionType())
		assert.Equal(t, uint64(42), *req.MonteCarlo.Seed)
	})

	t.Run("ApplyTo defaults to the first contract", func(t *testing.T) {
		paths := 10
		dto := PricingRequestDTO{NumPaths: &paths}

		require.NoError(t, config.ApplyTo(&dto, ""))
		assert.Equal(t, "call", dto.OptionType)
		assert.Equal(t, 10, *dto.NumPaths)

		assert.Error(t, config.ApplyTo(&dto, "missing"))
	})
}

func TestPricingRequestTolerance(t *testing.T) {
	contract, err := NewEuropeanOptionContract(100, 100, 0.05, 0.2, 1, OptionTypeCall)
	require.NoError(t, err)

	t.Run("rejects tolerances that are not positive and finite", func(t *testing.T) {
		for _, tolerance := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -1, 0} {
			req := PricingRequest{
				Contract:   contract,
				MonteCarlo: MonteCarloParams{NumPaths: 10},
				Tolerance:  tolerance,
			}

			err := req.Validate()
			assert.ErrorIs(t, err, InvalidSimulationParamsErr, "tolerance=%v", tolerance)
			assert.Equal(t, DomainErrorTypeInvalidSimulationParams, DomainErrorType(err))
		}
	})

	t.Run("dto with a NaN tolerance fails", func(t *testing.T) {
		tolerance := math.NaN()
		dto := PricingRequestDTO{
			SpotPrice:    100,
			StrikePrice:  100,
			RiskFreeRate: 0.05,
			Volatility:   0.2,
			Maturity:     1,
			OptionType:   "call",
			Tolerance:    &tolerance,
		}

		_, err := dto.ToModel()
		assert.ErrorIs(t, err, InvalidSimulationParamsErr)
	})

	t.Run("convergence study request checks its tolerance", func(t *testing.T) {
		req := ConvergenceStudyRequest{
			Contract:   contract,
			PathCounts: []int{10},
			Trials:     1,
			Tolerance:  math.Inf(1),
		}
		assert.ErrorIs(t, req.Validate(), InvalidSimulationParamsErr)

		req.Tolerance = 0.01
		assert.NoError(t, req.Validate())
	})
}

func TestMonteCarloParamsCheckLimits(t *testing.T) {
	limits := MonteCarloLimits{MaxNumPaths: 1000, MaxWorkers: 4, MaxSteps: 10, MaxDraws: 5000}

	t.Run("within limits", func(t *testing.T) {
		assert.NoError(t, MonteCarloParams{NumPaths: 1000, Workers: 4, Steps: 5}.CheckLimits(limits))
		assert.NoError(t, MonteCarloParams{NumPaths: 1000}.CheckLimits(limits))
		assert.NoError(t, MonteCarloParams{NumPaths: 2_000_000_000, Workers: 2_000_000_000}.CheckLimits(MonteCarloLimits{}))
	})

	t.Run("each cap is enforced", func(t *testing.T) {
		cases := map[string]MonteCarloParams{
			"paths":   {NumPaths: 1001},
			"workers": {NumPaths: 10, Workers: 2_000_000_000},
			"steps":   {NumPaths: 10, Steps: 11},
			"draws":   {NumPaths: 1000, Steps: 6},
		}

		for name, params := range cases {
			assert.ErrorIs(t, params.CheckLimits(limits), InvalidSimulationParamsErr, name)
		}
	})
}

func TestPricingConfigYAMLApplyToDefaults(t *testing.T) {
	config, err := ParsePricingConfigYAML([]byte("contracts: []\n"))
	require.NoError(t, err)

	dto := PricingRequestDTO{SpotPrice: 100, StrikePrice: 100, RiskFreeRate: 0.05, Volatility: 0.2, Maturity: 1, OptionType: "put"}
	require.NoError(t, config.ApplyTo(&dto, ""))

	require.NotNil(t, dto.NumPaths)
	assert.Equal(t, DefaultNumPaths, *dto.NumPaths)
	require.NotNil(t, dto.Tolerance)
	assert.Equal(t, DefaultConvergenceTolerance, *dto.Tolerance)
	assert.Equal(t, "put", dto.OptionType)
}
