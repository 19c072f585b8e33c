package eventmodels

import (
	"fmt"
	"math"
)

const DefaultConvergenceTolerance = 0.01

type ConvergenceVerdict struct {
	Difference float64 `json:"difference"`
	Converged  bool    `json:"converged"`
}

// ValidateTolerance rejects tolerances that are not finite or not positive.
func ValidateTolerance(tolerance float64) error {
	if math.IsNaN(tolerance) || math.IsInf(tolerance, 0) || tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive and finite, found %v: %w", tolerance, InvalidSimulationParamsErr)
	}

	return nil
}
