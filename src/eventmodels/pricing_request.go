package eventmodels

import "fmt"

const DefaultNumPaths = 1_000_000

type PricingRequest struct {
	Contract   *EuropeanOptionContract
	MonteCarlo MonteCarloParams
	Tolerance  float64
}

func (r *PricingRequest) Validate() error {
	if r.Contract == nil {
		return fmt.Errorf("PricingRequest: missing contract: %w", InvalidContractErr)
	}

	if err := r.MonteCarlo.Validate(); err != nil {
		return err
	}

	if err := ValidateTolerance(r.Tolerance); err != nil {
		return fmt.Errorf("PricingRequest: %w", err)
	}

	return nil
}

// PricingRequestDTO is the wire form of a PricingRequest. The schema tags name the query
// parameters accepted by the HTTP api.
type PricingRequestDTO struct {
	SpotPrice    float64  `json:"spot_price" schema:"spot"`
	StrikePrice  float64  `json:"strike_price" schema:"strike"`
	RiskFreeRate float64  `json:"risk_free_rate" schema:"rate"`
	Volatility   float64  `json:"volatility" schema:"volatility"`
	Maturity     float64  `json:"maturity" schema:"maturity"`
	OptionType   string   `json:"option_type" schema:"type"`
	NumPaths     *int     `json:"num_paths,omitempty" schema:"paths"`
	Workers      int      `json:"workers,omitempty" schema:"workers"`
	Seed         *uint64  `json:"seed,omitempty" schema:"seed"`
	Steps        int      `json:"steps,omitempty" schema:"steps"`
	Tolerance    *float64 `json:"tolerance,omitempty" schema:"tolerance"`
}

func (dto *PricingRequestDTO) ToModel() (*PricingRequest, error) {
	optionType, err := ParseOptionType(dto.OptionType)
	if err != nil {
		return nil, fmt.Errorf("PricingRequestDTO.ToModel: %w", err)
	}

	contract, err := NewEuropeanOptionContract(dto.SpotPrice, dto.StrikePrice, dto.RiskFreeRate, dto.Volatility, dto.Maturity, optionType)
	if err != nil {
		return nil, fmt.Errorf("PricingRequestDTO.ToModel: %w", err)
	}

	numPaths := DefaultNumPaths
	if dto.NumPaths != nil {
		numPaths = *dto.NumPaths
	}

	tolerance := DefaultConvergenceTolerance
	if dto.Tolerance != nil {
		tolerance = *dto.Tolerance
	}

	req := &PricingRequest{
		Contract: contract,
		MonteCarlo: MonteCarloParams{
			NumPaths: numPaths,
			Workers:  dto.Workers,
			Seed:     dto.Seed,
			Steps:    dto.Steps,
		},
		Tolerance: tolerance,
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("PricingRequestDTO.ToModel: %w", err)
	}

	return req, nil
}

// IsReproducible reports whether two identical requests produce identical reports.
func (dto *PricingRequestDTO) IsReproducible() bool {
	return dto.Seed != nil
}

// CacheKey is a canonical string for the request. Optional fields are resolved to the values
// ToModel would use, so an omitted field and its explicit default share a key.
func (dto *PricingRequestDTO) CacheKey() string {
	numPaths := DefaultNumPaths
	if dto.NumPaths != nil {
		numPaths = *dto.NumPaths
	}

	tolerance := DefaultConvergenceTolerance
	if dto.Tolerance != nil {
		tolerance = *dto.Tolerance
	}

	seed := "none"
	if dto.Seed != nil {
		seed = fmt.Sprintf("%d", *dto.Seed)
	}

	optionType, err := ParseOptionType(dto.OptionType)
	if err != nil {
		optionType = OptionType(dto.OptionType)
	}

	return fmt.Sprintf("%s|%v|%v|%v|%v|%v|paths=%d|workers=%d|seed=%s|steps=%d|tol=%v",
		optionType, dto.SpotPrice, dto.StrikePrice, dto.RiskFreeRate, dto.Volatility, dto.Maturity,
		numPaths, dto.Workers, seed, dto.Steps, tolerance)
}
