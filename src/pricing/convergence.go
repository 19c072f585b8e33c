package pricing

import (
	"math"

	"github.com/jiaming2012/european-pricer/src/eventmodels"
)

// CheckConvergence compares two prices against an absolute tolerance. The comparison is
// strict: a difference equal to the tolerance has not converged.
func CheckConvergence(closedFormPrice, monteCarloPrice, tolerance float64) eventmodels.ConvergenceVerdict {
	diff := math.Abs(closedFormPrice - monteCarloPrice)

	return eventmodels.ConvergenceVerdict{
		Difference: diff,
		Converged:  diff < tolerance,
	}
}
