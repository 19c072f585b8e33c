package eventmodels

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type PricingContractYAML struct {
	Name                      string `yaml:"name"`
	EuropeanOptionContractDTO `yaml:",inline"`
}

type MonteCarloYAML struct {
	NumPaths int     `yaml:"numPaths"`
	Workers  int     `yaml:"workers"`
	Seed     *uint64 `yaml:"seed,omitempty"`
	Steps    int     `yaml:"steps"`
}

type PricingConfigYAML struct {
	Tolerance  *float64              `yaml:"tolerance,omitempty"`
	MonteCarlo MonteCarloYAML        `yaml:"monteCarlo"`
	Contracts  []PricingContractYAML `yaml:"contracts"`
}

func (c *PricingConfigYAML) GetContract(name string) (*PricingContractYAML, error) {
	for _, contract := range c.Contracts {
		if strings.EqualFold(contract.Name, name) {
			return &contract, nil
		}
	}

	return nil, fmt.Errorf("PricingConfigYAML: contract %q not found", name)
}

func (c *PricingConfigYAML) GetTolerance() float64 {
	if c.Tolerance == nil {
		return DefaultConvergenceTolerance
	}

	return *c.Tolerance
}

func (c *PricingConfigYAML) GetMonteCarloParams() MonteCarloParams {
	numPaths := c.MonteCarlo.NumPaths
	if numPaths == 0 {
		numPaths = DefaultNumPaths
	}

	return MonteCarloParams{
		NumPaths: numPaths,
		Workers:  c.MonteCarlo.Workers,
		Seed:     c.MonteCarlo.Seed,
		Steps:    c.MonteCarlo.Steps,
	}
}

func ParsePricingConfigYAML(data []byte) (*PricingConfigYAML, error) {
	var config PricingConfigYAML
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("ParsePricingConfigYAML: failed to unmarshal: %w", err)
	}

	return &config, nil
}

func LoadPricingConfigYAML(path string) (*PricingConfigYAML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadPricingConfigYAML: failed to read %s: %w", path, err)
	}

	return ParsePricingConfigYAML(data)
}

// ApplyTo fills dto from the config. The named contract replaces the contract fields, or the
// first contract when name is empty. Simulation settings and tolerance only fill fields that
// dto leaves unset.
func (c *PricingConfigYAML) ApplyTo(dto *PricingRequestDTO, name string) error {
	if len(c.Contracts) > 0 || name != "" {
		var item *PricingContractYAML
		if name == "" {
			item = &c.Contracts[0]
		} else {
			found, err := c.GetContract(name)
			if err != nil {
				return fmt.Errorf("PricingConfigYAML.ApplyTo: %w", err)
			}
			item = found
		}

		dto.SpotPrice = item.SpotPrice
		dto.StrikePrice = item.StrikePrice
		dto.RiskFreeRate = item.RiskFreeRate
		dto.Volatility = item.Volatility
		dto.Maturity = item.Maturity
		dto.OptionType = string(item.OptionType)
	}

	params := c.GetMonteCarloParams()

	if dto.NumPaths == nil {
		dto.NumPaths = &params.NumPaths
	}

	if dto.Workers == 0 {
		dto.Workers = params.Workers
	}

	if dto.Seed == nil {
		dto.Seed = params.Seed
	}

	if dto.Steps == 0 {
		dto.Steps = params.Steps
	}

	if dto.Tolerance == nil {
		tolerance := c.GetTolerance()
		dto.Tolerance = &tolerance
	}

	return nil
}
