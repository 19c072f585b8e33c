package eventmodels

import "fmt"

// MonteCarloParams controls one simulation run. Only NumPaths is required.
type MonteCarloParams struct {
	NumPaths int

	// Workers caps the number of goroutines. Zero means runtime.GOMAXPROCS(0).
	Workers int

	// Seed makes a run reproducible for a fixed Workers and Steps. Nil seeds from the clock.
	Seed *uint64

	// Steps splits each path into equal time increments. Zero and one both mean a single
	// terminal draw per path.
	Steps int
}

func (p MonteCarloParams) Validate() error {
	if p.NumPaths <= 0 {
		return fmt.Errorf("MonteCarloParams: num paths must be positive, found %d: %w", p.NumPaths, InvalidPathCountErr)
	}

	if p.Workers < 0 {
		return fmt.Errorf("MonteCarloParams: workers must not be negative, found %d: %w", p.Workers, InvalidSimulationParamsErr)
	}

	if p.Steps < 0 {
		return fmt.Errorf("MonteCarloParams: steps must not be negative, found %d: %w", p.Steps, InvalidSimulationParamsErr)
	}

	return nil
}

type MonteCarloEstimate struct {
	Price         float64 `json:"price"`
	StandardError float64 `json:"standard_error"`
	NumPaths      int     `json:"num_paths"`
	Workers       int     `json:"workers"`
	Steps         int     `json:"steps"`
	Seed          uint64  `json:"seed"`
}

// MonteCarloLimits bounds the work a single run may ask for. A zero field is unbounded.
type MonteCarloLimits struct {
	MaxNumPaths int
	MaxWorkers  int
	MaxSteps    int

	// MaxDraws caps NumPaths * Steps, the number of normal variates drawn.
	MaxDraws int
}

func (p MonteCarloParams) CheckLimits(limits MonteCarloLimits) error {
	if limits.MaxNumPaths > 0 && p.NumPaths > limits.MaxNumPaths {
		return fmt.Errorf("MonteCarloParams: num paths must not exceed %d, found %d: %w", limits.MaxNumPaths, p.NumPaths, InvalidSimulationParamsErr)
	}

	if limits.MaxWorkers > 0 && p.Workers > limits.MaxWorkers {
		return fmt.Errorf("MonteCarloParams: workers must not exceed %d, found %d: %w", limits.MaxWorkers, p.Workers, InvalidSimulationParamsErr)
	}

	if limits.MaxSteps > 0 && p.Steps > limits.MaxSteps {
		return fmt.Errorf("MonteCarloParams: steps must not exceed %d, found %d: %w", limits.MaxSteps, p.Steps, InvalidSimulationParamsErr)
	}

	steps := p.Steps
	if steps == 0 {
		steps = 1
	}

	if limits.MaxDraws > 0 && p.NumPaths > limits.MaxDraws/steps {
		return fmt.Errorf("MonteCarloParams: %d paths of %d steps exceed %d draws: %w", p.NumPaths, steps, limits.MaxDraws, InvalidSimulationParamsErr)
	}

	return nil
}
