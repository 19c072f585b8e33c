package pricing

import (
	"fmt"
	"math"

	"github.com/jiaming2012/european-pricer/src/eventmodels"
)

type blackScholesTerms struct {
	sqrtT    float64
	sigmaRtT float64
	dPlus    float64
	dMinus   float64
	discount float64
}

func newBlackScholesTerms(op string, contract *eventmodels.EuropeanOptionContract) (blackScholesTerms, error) {
	if contract == nil {
		return blackScholesTerms{}, fmt.Errorf("%s: missing contract: %w", op, eventmodels.InvalidContractErr)
	}

	sqrtT := math.Sqrt(contract.Maturity())
	sigmaRtT := contract.Volatility() * sqrtT
	if sigmaRtT == 0 {
		return blackScholesTerms{}, fmt.Errorf("%s: volatility is zero, the closed form is undefined: %w", op, eventmodels.DegenerateVolatilityErr)
	}

	r := contract.RiskFreeRate()
	vol := contract.Volatility()
	t := contract.Maturity()

	dPlus := (math.Log(contract.SpotPrice()/contract.StrikePrice()) + (r+0.5*vol*vol)*t) / sigmaRtT

	return blackScholesTerms{
		sqrtT:    sqrtT,
		sigmaRtT: sigmaRtT,
		dPlus:    dPlus,
		dMinus:   dPlus - sigmaRtT,
		discount: contract.DiscountFactor(),
	}, nil
}

// ClosedFormPrice is the Black-Scholes price of a European call or put.
func ClosedFormPrice(contract *eventmodels.EuropeanOptionContract) (float64, error) {
	terms, err := newBlackScholesTerms("ClosedFormPrice", contract)
	if err != nil {
		return 0, err
	}

	spot := contract.SpotPrice()
	strike := contract.StrikePrice()

	switch contract.OptionType() {
	case eventmodels.OptionTypeCall:
		return spot*NormalCDF(terms.dPlus) - strike*terms.discount*NormalCDF(terms.dMinus), nil
	case eventmodels.OptionTypePut:
		return strike*terms.discount*NormalCDF(-terms.dMinus) - spot*NormalCDF(-terms.dPlus), nil
	default:
		return 0, fmt.Errorf("ClosedFormPrice: unknown option type %q: %w", contract.OptionType(), eventmodels.InvalidContractErr)
	}
}

func ClosedFormGreeks(contract *eventmodels.EuropeanOptionContract) (eventmodels.Greeks, error) {
	terms, err := newBlackScholesTerms("ClosedFormGreeks", contract)
	if err != nil {
		return eventmodels.Greeks{}, err
	}

	spot := contract.SpotPrice()
	strike := contract.StrikePrice()
	r := contract.RiskFreeRate()
	t := contract.Maturity()
	pdf := NormalPDF(terms.dPlus)

	greeks := eventmodels.Greeks{
		Gamma: pdf / (spot * terms.sigmaRtT),
		Vega:  spot * pdf * terms.sqrtT,
	}

	decay := -spot * pdf * contract.Volatility() / (2 * terms.sqrtT)

	switch contract.OptionType() {
	case eventmodels.OptionTypeCall:
		greeks.Delta = NormalCDF(terms.dPlus)
		greeks.Theta = decay - r*strike*terms.discount*NormalCDF(terms.dMinus)
		greeks.Rho = strike * t * terms.discount * NormalCDF(terms.dMinus)
	case eventmodels.OptionTypePut:
		greeks.Delta = NormalCDF(terms.dPlus) - 1
		greeks.Theta = decay + r*strike*terms.discount*NormalCDF(-terms.dMinus)
		greeks.Rho = -strike * t * terms.discount * NormalCDF(-terms.dMinus)
	default:
		return eventmodels.Greeks{}, fmt.Errorf("ClosedFormGreeks: unknown option type %q: %w", contract.OptionType(), eventmodels.InvalidContractErr)
	}

	return greeks, nil
}
