package eventmodels

import "fmt"

type EuropeanOptionContractDTO struct {
	SpotPrice    float64    `json:"spot_price" yaml:"spotPrice"`
	StrikePrice  float64    `json:"strike_price" yaml:"strikePrice"`
	RiskFreeRate float64    `json:"risk_free_rate" yaml:"riskFreeRate"`
	Volatility   float64    `json:"volatility" yaml:"volatility"`
	Maturity     float64    `json:"maturity" yaml:"maturity"`
	OptionType   OptionType `json:"option_type" yaml:"optionType"`
}

func (dto *EuropeanOptionContractDTO) ToModel() (*EuropeanOptionContract, error) {
	optionType, err := ParseOptionType(string(dto.OptionType))
	if err != nil {
		return nil, fmt.Errorf("EuropeanOptionContractDTO.ToModel: %w", err)
	}

	return NewEuropeanOptionContract(dto.SpotPrice, dto.StrikePrice, dto.RiskFreeRate, dto.Volatility, dto.Maturity, optionType)
}
