package eventmodels

import (
	"fmt"
	"math"
)

// EuropeanOptionContract describes one European option and the market inputs used to price it.
// Fields are unexported so a contract can only come out of NewEuropeanOptionContract and
// cannot change afterwards.
type EuropeanOptionContract struct {
	spotPrice    float64
	strikePrice  float64
	riskFreeRate float64
	volatility   float64
	maturity     float64
	optionType   OptionType
}

func (c *EuropeanOptionContract) SpotPrice() float64 {
	return c.spotPrice
}

func (c *EuropeanOptionContract) StrikePrice() float64 {
	return c.strikePrice
}

// RiskFreeRate is the continuously compounded annual rate. It may be negative.
func (c *EuropeanOptionContract) RiskFreeRate() float64 {
	return c.riskFreeRate
}

func (c *EuropeanOptionContract) Volatility() float64 {
	return c.volatility
}

// Maturity is the time to expiry in years.
func (c *EuropeanOptionContract) Maturity() float64 {
	return c.maturity
}

func (c *EuropeanOptionContract) OptionType() OptionType {
	return c.optionType
}

func (c *EuropeanOptionContract) DiscountFactor() float64 {
	return math.Exp(-c.riskFreeRate * c.maturity)
}

// WithOptionType returns a copy of the contract with a different payoff kind.
func (c *EuropeanOptionContract) WithOptionType(optionType OptionType) (*EuropeanOptionContract, error) {
	return NewEuropeanOptionContract(c.spotPrice, c.strikePrice, c.riskFreeRate, c.volatility, c.maturity, optionType)
}

func (c *EuropeanOptionContract) String() string {
	return fmt.Sprintf("%s spot=%v strike=%v rate=%v vol=%v maturity=%v", c.optionType, c.spotPrice, c.strikePrice, c.riskFreeRate, c.volatility, c.maturity)
}

func (c *EuropeanOptionContract) ToDTO() *EuropeanOptionContractDTO {
	return &EuropeanOptionContractDTO{
		SpotPrice:    c.spotPrice,
		StrikePrice:  c.strikePrice,
		RiskFreeRate: c.riskFreeRate,
		Volatility:   c.volatility,
		Maturity:     c.maturity,
		OptionType:   c.optionType,
	}
}

func NewEuropeanOptionContract(spotPrice, strikePrice, riskFreeRate, volatility, maturity float64, optionType OptionType) (*EuropeanOptionContract, error) {
	if !isFinite(spotPrice) || spotPrice <= 0 {
		return nil, fmt.Errorf("NewEuropeanOptionContract: spot price must be positive, found %v: %w", spotPrice, InvalidContractErr)
	}

	if !isFinite(strikePrice) || strikePrice <= 0 {
		return nil, fmt.Errorf("NewEuropeanOptionContract: strike price must be positive, found %v: %w", strikePrice, InvalidContractErr)
	}

	if !isFinite(riskFreeRate) {
		return nil, fmt.Errorf("NewEuropeanOptionContract: risk free rate must be finite, found %v: %w", riskFreeRate, InvalidContractErr)
	}

	if !isFinite(volatility) || volatility < 0 {
		return nil, fmt.Errorf("NewEuropeanOptionContract: volatility must be non-negative, found %v: %w", volatility, InvalidContractErr)
	}

	if !isFinite(maturity) || maturity <= 0 {
		return nil, fmt.Errorf("NewEuropeanOptionContract: maturity must be positive, found %v: %w", maturity, InvalidContractErr)
	}

	if err := optionType.Validate(); err != nil {
		return nil, fmt.Errorf("NewEuropeanOptionContract: %v: %w", err, InvalidContractErr)
	}

	return &EuropeanOptionContract{
		spotPrice:    spotPrice,
		strikePrice:  strikePrice,
		riskFreeRate: riskFreeRate,
		volatility:   volatility,
		maturity:     maturity,
		optionType:   optionType,
	}, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
