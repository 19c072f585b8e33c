package eventmodels

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEuropeanOptionContract(t *testing.T) {
	t.Run("valid contract", func(t *testing.T) {
		contract, err := NewEuropeanOptionContract(100, 95, -0.01, 0.2, 0.5, OptionTypePut)
		require.NoError(t, err)

		assert.Equal(t, 100.0, contract.SpotPrice())
		assert.Equal(t, 95.0, contract.StrikePrice())
		assert.Equal(t, -0.01, contract.RiskFreeRate())
		assert.Equal(t, 0.2, contract.Volatility())
		assert.Equal(t, 0.5, contract.Maturity())
		assert.Equal(t, OptionTypePut, contract.OptionType())
		assert.InDelta(t, math.Exp(0.005), contract.DiscountFactor(), 1e-15)
	})

	t.Run("zero volatility is a valid contract", func(t *testing.T) {
		_, err := NewEuropeanOptionContract(100, 100, 0.05, 0, 1, OptionTypeCall)
		assert.NoError(t, err)
	})

	t.Run("negative strike fails", func(t *testing.T) {
		contract, err := NewEuropeanOptionContract(100, -1, 0.05, 0.2, 1, OptionTypeCall)
		assert.ErrorIs(t, err, InvalidContractErr)
		assert.ErrorIs(t, err, DomainErr)
		assert.Nil(t, contract)
	})

	t.Run("invariant violations fail", func(t *testing.T) {
		cases := map[string][]float64{
			"zero spot":         {0, 100, 0.05, 0.2, 1},
			"negative spot":     {-5, 100, 0.05, 0.2, 1},
			"zero strike":       {100, 0, 0.05, 0.2, 1},
			"negative vol":      {100, 100, 0.05, -0.2, 1},
			"zero maturity":     {100, 100, 0.05, 0.2, 0},
			"negative maturity": {100, 100, 0.05, 0.2, -1},
			"nan spot":          {math.NaN(), 100, 0.05, 0.2, 1},
			"infinite strike":   {100, math.Inf(1), 0.05, 0.2, 1},
			"nan rate":          {100, 100, math.NaN(), 0.2, 1},
			"infinite vol":      {100, 100, 0.05, math.Inf(1), 1},
			"infinite maturity": {100, 100, 0.05, 0.2, math.Inf(1)},
		}

		for name, c := range cases {
			contract, err := NewEuropeanOptionContract(c[0], c[1], c[2], c[3], c[4], OptionTypeCall)
			assert.ErrorIs(t, err, InvalidContractErr, name)
			assert.Nil(t, contract, name)
		}
	})

	t.Run("unknown option type fails", func(t *testing.T) {
		_, err := NewEuropeanOptionContract(100, 100, 0.05, 0.2, 1, OptionType("straddle"))
		assert.ErrorIs(t, err, InvalidContractErr)
	})

	t.Run("WithOptionType copies every other field", func(t *testing.T) {
		call, err := NewEuropeanOptionContract(100, 95, 0.01, 0.3, 2, OptionTypeCall)
		require.NoError(t, err)

		put, err := call.WithOptionType(OptionTypePut)
		require.NoError(t, err)

		assert.Equal(t, OptionTypeCall, call.OptionType())
		assert.Equal(t, OptionTypePut, put.OptionType())
		assert.Equal(t, call.SpotPrice(), put.SpotPrice())
		assert.Equal(t, call.StrikePrice(), put.StrikePrice())
		assert.Equal(t, call.Maturity(), put.Maturity())
	})

	t.Run("dto round trip", func(t *testing.T) {
		contract, err := NewEuropeanOptionContract(100, 95, 0.01, 0.3, 2, OptionTypeCall)
		require.NoError(t, err)

		back, err := contract.ToDTO().ToModel()
		require.NoError(t, err)
		assert.Equal(t, contract, back)
	})
}

func TestParseOptionType(t *testing.T) {
	for in, want := range map[string]OptionType{"call": OptionTypeCall, "CALL": OptionTypeCall, " c ": OptionTypeCall, "Put": OptionTypePut, "p": OptionTypePut} {
		got, err := ParseOptionType(in)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseOptionType("vertical_call")
	assert.ErrorIs(t, err, InvalidContractErr)
}

func TestDomainErrorType(t *testing.T) {
	_, err := NewEuropeanOptionContract(100, -1, 0.05, 0.2, 1, OptionTypeCall)
	assert.Equal(t, DomainErrorTypeInvalidContract, DomainErrorType(err))

	err = MonteCarloParams{NumPaths: 0}.Validate()
	assert.Equal(t, DomainErrorTypeInvalidPathCount, DomainErrorType(err))

	err = MonteCarloParams{NumPaths: 1, Workers: -1}.Validate()
	assert.Equal(t, DomainErrorTypeInvalidSimulationParams, DomainErrorType(err))

	assert.Equal(t, DomainErrorTypeDegenerateVolatility, DomainErrorType(DegenerateVolatilityErr))
	assert.Equal(t, DomainErrorTypeInternal, DomainErrorType(assert.AnError))
}
